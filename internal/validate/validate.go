package validate

import (
	"fmt"
	"os"
	"path/filepath"
)

// Inputs validates that the grid file and every colour stop exist
func Inputs(gridPath string, stopPaths []string) error {
	if !IsFile(gridPath) {
		return fmt.Errorf("%s does not exist or is no file", gridPath)
	}

	for i, stopPath := range stopPaths {
		if !IsFile(stopPath) {
			return fmt.Errorf("colour stop %d: %s does not exist or is no file", i, stopPath)
		}
	}

	return nil
}

// OutputFile validates that the directory the file at filePath would be
// written to exists
func OutputFile(filePath string) error {
	if IsDirectory(filePath) {
		return fmt.Errorf("%s is a directory", filePath)
	}

	dir := filepath.Dir(filePath)
	if !IsDirectory(dir) {
		return fmt.Errorf("output directory %s does not exist", dir)
	}

	return nil
}

// OutputDirectory validates that given directory exists
func OutputDirectory(dirPath string) error {
	if !IsDirectory(dirPath) {
		return fmt.Errorf("output directory %s does not exist or is no directory", dirPath)
	}

	return nil
}

// IsFile tests whether given path exists and is a file
func IsFile(filePath string) bool {
	info, err := os.Stat(filePath)
	return err == nil && !info.IsDir()
}

// IsDirectory tests whether given path exists and is a directory
func IsDirectory(dirPath string) bool {
	info, err := os.Stat(dirPath)
	return err == nil && info.IsDir()
}
