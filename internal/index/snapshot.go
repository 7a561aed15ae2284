package index

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Snapshot artifact names. A snapshot is two coupled files in one
// directory: a raw vector blob and a parallel document-metadata blob.
const (
	vectorsFile   = "vectors.bin"
	documentsFile = "documents.json"
)

// snapshotMagic identifies the vector blob format.
var snapshotMagic = [8]byte{'B', 'P', 'V', 'E', 'C', '0', '0', '1'}

type vectorHeader struct {
	Magic     [8]byte
	Dimension uint32
	Count     uint32
}

// Save writes both snapshot artifacts to dir, creating it if needed.
func (f *Flat) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if err := f.saveVectors(filepath.Join(dir, vectorsFile)); err != nil {
		return fmt.Errorf("save vectors: %w", err)
	}
	if err := f.saveDocuments(filepath.Join(dir, documentsFile)); err != nil {
		return fmt.Errorf("save documents: %w", err)
	}
	return nil
}

func (f *Flat) saveVectors(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	header := vectorHeader{
		Magic:     snapshotMagic,
		Dimension: uint32(f.dimension),
		Count:     uint32(len(f.vectors)),
	}
	if err := binary.Write(file, binary.LittleEndian, header); err != nil {
		return err
	}
	for _, vec := range f.vectors {
		if err := binary.Write(file, binary.LittleEndian, vec); err != nil {
			return err
		}
	}
	return file.Close()
}

func (f *Flat) saveDocuments(path string) error {
	data, err := json.Marshal(f.docs)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Load replaces the index contents from the snapshot in dir.
//
// The two artifacts degrade independently: a missing vector blob yields a
// fresh empty index, a missing document blob yields an empty document list.
// A pair that loads with mismatched counts is rejected with
// ErrSnapshotCorrupt and leaves the index unchanged.
func (f *Flat) Load(dir string) error {
	vectors, err := loadVectors(filepath.Join(dir, vectorsFile), f.dimension)
	if err != nil {
		return fmt.Errorf("load vectors: %w", err)
	}

	docs, err := loadDocuments(filepath.Join(dir, documentsFile))
	if err != nil {
		return fmt.Errorf("load documents: %w", err)
	}

	if len(vectors) != len(docs) {
		return fmt.Errorf("%w: %d vectors, %d documents",
			ErrSnapshotCorrupt, len(vectors), len(docs))
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.vectors = vectors
	f.docs = docs
	return nil
}

func loadVectors(path string, dimension int) ([][]float32, error) {
	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var header vectorHeader
	if err := binary.Read(file, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if header.Magic != snapshotMagic {
		return nil, fmt.Errorf("unrecognized vector blob format")
	}
	if int(header.Dimension) != dimension {
		return nil, fmt.Errorf("%w: snapshot dimension %d, index dimension %d",
			ErrDimensionMismatch, header.Dimension, dimension)
	}

	vectors := make([][]float32, 0, header.Count)
	for i := uint32(0); i < header.Count; i++ {
		vec := make([]float32, dimension)
		if err := binary.Read(file, binary.LittleEndian, vec); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return nil, fmt.Errorf("%w: vector blob truncated at entry %d", ErrSnapshotCorrupt, i)
			}
			return nil, err
		}
		vectors = append(vectors, vec)
	}
	return vectors, nil
}

func loadDocuments(path string) ([]Document, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var docs []Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("parse documents: %w", err)
	}
	return docs, nil
}
