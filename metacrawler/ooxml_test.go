/*
* WinPropStore, a Go library for reading and writing file metadata through the Windows property system.
*
* Copyright (c) the WinPropStore authors, 2022-2026.
*
* This work is licensed under the terms of the MIT license. For a copy, see the LICENSE file in the top-level
* directory or visit <https://opensource.org/licenses/MIT>.
*
 */

package metacrawler

import (
	"archive/zip"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"

	"github.com/filemeta/winpropstore/_test"
	"github.com/filemeta/winpropstore/propertystore"
	"github.com/filemeta/winpropstore/utils"
)

const sampleCustomXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/custom-properties"
            xmlns:vt="http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes">
  <property fmtid="{D5CDD505-2E9C-101B-9397-08002B2CF9AE}" pid="2" name="Classification">
    <vt:lpwstr>internal</vt:lpwstr>
  </property>
  <property fmtid="{D5CDD505-2E9C-101B-9397-08002B2CF9AE}" pid="3" name="Reviewer">
    <vt:lpwstr>Jane Doe</vt:lpwstr>
  </property>
</Properties>`

func TestParseOOXMLProperties(t *testing.T) {

	// Parse the sample metadata file
	props, errParse := parseOOXMLProperties([]byte(sampleCustomXML))
	if errParse != nil {
		t.Errorf("parseOOXMLProperties() error = '%s'", errParse)
		return
	}

	// Verify extracted names and values
	want := []OOXMLProperty{
		{Fmtid: "{D5CDD505-2E9C-101B-9397-08002B2CF9AE}", Pid: "2", Name: "Classification", ValStr: "internal"},
		{Fmtid: "{D5CDD505-2E9C-101B-9397-08002B2CF9AE}", Pid: "3", Name: "Reviewer", ValStr: "Jane Doe"},
	}
	if !reflect.DeepEqual(props.Properties, want) {
		t.Errorf("parseOOXMLProperties() = '%s', want '%s'", spew.Sdump(props.Properties), spew.Sdump(want))
	}

	// Verify the property key of the first entry
	key, errKey := props.Properties[0].Key()
	if errKey != nil {
		t.Errorf("Key() error = '%s'", errKey)
		return
	}
	wantKey := propertystore.MustParseKey("{D5CDD505-2E9C-101B-9397-08002B2CF9AE} 2")
	if key != wantKey {
		t.Errorf("Key() = '%s', want '%s'", key, wantKey)
	}
}

func TestOOXMLProperties_containsSimilar(t *testing.T) {
	props := &OOXMLProperties{
		Properties: []OOXMLProperty{
			{Fmtid: "{D5CDD505-2E9C-101B-9397-08002B2CF9AE}", Pid: "2", Name: "Classification"},
		},
	}
	tests := []struct {
		name string
		prop OOXMLProperty
		want bool
	}{
		{"same-name", OOXMLProperty{Name: "Classification"}, true},
		{"same-key", OOXMLProperty{Fmtid: "{D5CDD505-2E9C-101B-9397-08002B2CF9AE}", Pid: "2", Name: "Other"}, true},
		{"same-fmtid-other-pid", OOXMLProperty{Fmtid: "{D5CDD505-2E9C-101B-9397-08002B2CF9AE}", Pid: "3", Name: "Other"}, false},
		{"unrelated", OOXMLProperty{Fmtid: "{11111111-2222-3333-4444-555555555555}", Pid: "2", Name: "Other"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := props.containsSimilar(tt.prop); got != tt.want {
				t.Errorf("containsSimilar() = '%v', want '%v'", got, tt.want)
			}
		})
	}
}

// writeOOXMLFile creates a minimal OOXML container holding the given metadata file content
func writeOOXMLFile(t *testing.T, dir string, customXML string) string {

	path := filepath.Join(dir, "document.docx")
	f, errCreate := os.Create(path)
	if errCreate != nil {
		t.Fatalf("Could not create OOXML file: %s", errCreate)
	}

	w := zip.NewWriter(f)
	entry, errEntry := w.Create(OOXMLCustomPropertiesFile)
	if errEntry != nil {
		t.Fatalf("Could not create zip entry: %s", errEntry)
	}
	if _, errWrite := entry.Write([]byte(customXML)); errWrite != nil {
		t.Fatalf("Could not write zip entry: %s", errWrite)
	}
	if errClose := w.Close(); errClose != nil {
		t.Fatalf("Could not close zip writer: %s", errClose)
	}
	if errClose := f.Close(); errClose != nil {
		t.Fatalf("Could not close OOXML file: %s", errClose)
	}

	return path
}

func TestGetOOXMLProperties(t *testing.T) {

	// Retrieve test settings
	testSettings, errSettings := _test.GetSettings()
	if errSettings != nil {
		t.Errorf("Invalid test settings: %s", errSettings)
		return
	}

	// Prepare test folder
	dir, errDir := os.MkdirTemp(testSettings.PathTmpDir, "ooxml-*")
	if errDir != nil {
		t.Errorf("Could not create test folder: %s", errDir)
		return
	}
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	// Prepare test files
	docPath := writeOOXMLFile(t, dir, sampleCustomXML)
	plainPath := filepath.Join(dir, "plain.txt")
	if errWrite := os.WriteFile(plainPath, []byte("no zip content"), 0644); errWrite != nil {
		t.Errorf("Could not create plain file: %s", errWrite)
		return
	}

	// Extract metadata from the OOXML container
	props, errProps := getOOXMLProperties(docPath, utils.NewTestLogger())
	if errProps != nil {
		t.Errorf("getOOXMLProperties() error = '%s'", errProps)
		return
	}
	if len(props.Properties) != 2 || props.Properties[0].Name != "Classification" {
		t.Errorf("getOOXMLProperties() = '%s', want two custom properties", spew.Sdump(props.Properties))
	}

	// A file that is no zip container yields an empty result, not an error
	props, errProps = getOOXMLProperties(plainPath, utils.NewTestLogger())
	if errProps != nil {
		t.Errorf("getOOXMLProperties() error = '%s'", errProps)
		return
	}
	if len(props.Properties) != 0 {
		t.Errorf("getOOXMLProperties() = '%s', want no properties", spew.Sdump(props.Properties))
	}
}
