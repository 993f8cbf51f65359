package main

import (
	"archive/zip"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pierrec/lz4"
)

// unpackArchive extracts a compressed input file next to the original and
// returns the extracted path. Plain files return "". The original is kept;
// a batch tool must not consume its own input.
func unpackArchive(filePath string) (string, error) {
	switch filepath.Ext(filePath) {
	case ".zip":
		return unpackZipArchive(filePath)
	case ".gz":
		return unpackStream(filePath, ".gz", func(r io.Reader) (io.Reader, error) {
			return gzip.NewReader(r)
		})
	case ".lz4":
		return unpackStream(filePath, ".lz4", func(r io.Reader) (io.Reader, error) {
			return lz4.NewReader(r), nil
		})
	}
	return "", nil
}

func unpackStream(filePath, ext string, wrap func(io.Reader) (io.Reader, error)) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	reader, err := wrap(file)
	if err != nil {
		return "", err
	}

	destPath := strings.TrimSuffix(filePath, ext)
	outFile, err := os.Create(destPath)
	if err != nil {
		return "", err
	}
	defer outFile.Close()

	if _, err = io.Copy(outFile, reader); err != nil {
		return "", err
	}
	return destPath, nil
}

func unpackZipArchive(filePath string) (string, error) {
	r, err := zip.OpenReader(filePath)
	if err != nil {
		return "", err
	}
	defer r.Close()

	// The largest file in the archive is assumed to be the data file.
	var largestFile *zip.File
	var largestSize uint64
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if f.UncompressedSize64 >= largestSize {
			largestFile = f
			largestSize = f.UncompressedSize64
		}
	}
	if largestFile == nil {
		return "", nil
	}

	destPath := filepath.Join(filepath.Dir(filePath), filepath.Base(largestFile.Name))
	outFile, err := os.Create(destPath)
	if err != nil {
		return "", err
	}
	defer outFile.Close()

	rc, err := largestFile.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	if _, err = io.Copy(outFile, rc); err != nil {
		return "", err
	}
	return destPath, nil
}
