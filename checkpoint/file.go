package checkpoint

import (
	"bufio"
	"fmt"
	"os"

	"github.com/notargets/gopic/types"
)

// WriteBinaryDataOnFile writes data to filename, replacing any existing file
func WriteBinaryDataOnFile(filename string, data []byte) (err error) {
	var (
		file *os.File
	)
	if file, err = os.Create(filename); err != nil {
		return fmt.Errorf("unable to create %s: %w", filename, err)
	}
	if _, err = file.Write(data); err != nil {
		file.Close()
		return fmt.Errorf("unable to write %s: %w", filename, err)
	}
	return file.Close()
}

// WriteParticleIDFile writes an id column to filename
func WriteParticleIDFile(filename string, ids []types.ParticleID) (err error) {
	var (
		file *os.File
	)
	if file, err = os.Create(filename); err != nil {
		return fmt.Errorf("unable to create %s: %w", filename, err)
	}
	w := bufio.NewWriter(file)
	if err = WriteParticleIDs(w, ids); err == nil {
		err = w.Flush()
	}
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	return
}

func ReadParticleIDFile(filename string) (ids []types.ParticleID, err error) {
	var (
		file *os.File
	)
	if file, err = os.Open(filename); err != nil {
		return
	}
	defer file.Close()
	if ids, err = ReadParticleIDs(bufio.NewReader(file)); err != nil {
		err = fmt.Errorf("reading %s: %w", filename, err)
	}
	return
}
