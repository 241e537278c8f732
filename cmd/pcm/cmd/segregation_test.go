package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestValidateFileExists(t *testing.T) {
	// Create temporary test files
	tmpDir := t.TempDir()
	validFile := filepath.Join(tmpDir, "valid.csv")
	if err := os.WriteFile(validFile, []byte("test"), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	tests := []struct {
		name        string
		filePath    string
		description string
		expectError bool
	}{
		{
			name:        "valid file",
			filePath:    validFile,
			description: "test file",
			expectError: false,
		},
		{
			name:        "empty path",
			filePath:    "",
			description: "test file",
			expectError: true,
		},
		{
			name:        "non-existent file",
			filePath:    "/non/existent/file.csv",
			description: "test file",
			expectError: true,
		},
		{
			name:        "directory instead of file",
			filePath:    tmpDir,
			description: "test file",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFileExists(tt.filePath, tt.description)

			if tt.expectError && err == nil {
				t.Errorf("expected error but got none")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func setSegregationFlags(t *testing.T, tmpDir string) {
	t.Helper()

	inputs := map[string]string{
		"fo-master":      "fo_master.csv",
		"cd-master":      "cd_master.csv",
		"collateral-fno": "cc_fno.csv",
		"collateral-cds": "cc_cds.csv",
		"margin-fno":     "margin_fno.csv",
		"margin-cds":     "margin_cds.csv",
		"valuation-fno":  "val_fno.csv",
		"valuation-cds":  "val_cds.csv",
	}
	for key, name := range inputs {
		path := filepath.Join(tmpDir, name)
		if err := os.WriteFile(path, []byte("header\n"), 0644); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
		viper.Set(key, path)
	}

	viper.Set("date", "15/03/2024")
	viper.Set("cp-pan", "AACCO4820B")
	viper.Set("cash-with-ncl", "0")
	viper.Set("output-dir", tmpDir)
	viper.Set("pledge", "")
	viper.Set("extra-records", "")
	viper.Set("santom", "")
	viper.Set("master-records", "")
	viper.Set("archive-db", "")
}

func TestValidateSegregationFlags(t *testing.T) {
	tests := []struct {
		name          string
		setupFlags    func(t *testing.T, tmpDir string)
		expectError   bool
		errorContains string
	}{
		{
			name:        "valid flags",
			setupFlags:  setSegregationFlags,
			expectError: false,
		},
		{
			name: "missing margin file",
			setupFlags: func(t *testing.T, tmpDir string) {
				setSegregationFlags(t, tmpDir)
				viper.Set("margin-fno", filepath.Join(tmpDir, "nope.csv"))
			},
			expectError:   true,
			errorContains: "does not exist",
		},
		{
			name: "missing optional pledge file still fails when set",
			setupFlags: func(t *testing.T, tmpDir string) {
				setSegregationFlags(t, tmpDir)
				viper.Set("pledge", filepath.Join(tmpDir, "nope.xlsx"))
			},
			expectError:   true,
			errorContains: "does not exist",
		},
		{
			name: "invalid date format",
			setupFlags: func(t *testing.T, tmpDir string) {
				setSegregationFlags(t, tmpDir)
				viper.Set("date", "2024-03-15")
			},
			expectError:   true,
			errorContains: "date",
		},
		{
			name: "missing cp-pan",
			setupFlags: func(t *testing.T, tmpDir string) {
				setSegregationFlags(t, tmpDir)
				viper.Set("cp-pan", "")
			},
			expectError:   true,
			errorContains: "cp-pan",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			tt.setupFlags(t, t.TempDir())

			err := validateSegregationFlags(segregationCmd, nil)

			if tt.expectError {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				if tt.errorContains != "" && !strings.Contains(err.Error(), tt.errorContains) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errorContains)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
