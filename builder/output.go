package builder

import (
	"archive/zip"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	qgis2kepler "github.com/flywave/go-qgis2kepler"
)

// ConfigFileName is the name of the document inside a zip export.
const ConfigFileName = "config.json"

func writeJSON(path string, doc *qgis2kepler.MapConfig) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return json.NewEncoder(f).Encode(doc)
}

// writeZip packs the document and the dataset files it references, found in
// dataDir, into a single archive.
func writeZip(path string, doc *qgis2kepler.MapConfig, dataDir string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	zw := zip.NewWriter(f)
	w, err := zw.CreateHeader(&zip.FileHeader{Name: ConfigFileName, Method: zip.Deflate})
	if err != nil {
		return err
	}
	if err := json.NewEncoder(w).Encode(doc); err != nil {
		return err
	}
	for _, ds := range doc.Datasets {
		if ds.Source == "" {
			continue
		}
		if err := addFile(zw, filepath.Join(dataDir, ds.Source), ds.Source); err != nil {
			return err
		}
	}
	return zw.Close()
}

func addFile(zw *zip.Writer, src, name string) error {
	r, err := os.Open(src)
	if err != nil {
		return err
	}
	defer r.Close()
	w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return err
	}
	_, err = io.Copy(w, r)
	return err
}
