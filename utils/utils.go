package utils

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/sable-lang/sable/token"
	"gopkg.in/yaml.v3"
)

// ErrorAt attaches the source position of a token to an error.
type ErrorAt struct {
	Where token.Token
	Err   error
}

func (e ErrorAt) Error() string {
	if e.Where.Kind == token.EOF {
		return fmt.Sprintf("at end: %s", e.Err.Error())
	}
	return fmt.Sprintf("at %d:%d: `%s`, %s", e.Where.Line, e.Where.Column, e.Where.Lexeme, e.Err.Error())
}

func (e ErrorAt) Unwrap() error {
	return e.Err
}

type TestData struct {
	Label    string
	Enable   bool
	Input    string
	Expected map[string]string
}

func ReadTestData(s []byte) []TestData {
	var data []TestData
	if err := yaml.Unmarshal(s, &data); err != nil {
		panic(err)
	}

	// Remove disabled test cases.
	i := 0
	for _, d := range data {
		if d.Enable {
			data[i] = d
			i++
		}
	}
	data = data[:i]

	return data
}

// FindSourceFiles returns every .sb file under dir.
func FindSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".sb") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}

	return files, nil
}
