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
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/filemeta/winpropstore/propertystore"
	"github.com/filemeta/winpropstore/utils"
)

const OOXMLCustomPropertiesFile = "docProps/custom.xml"

type OOXMLProperties struct {
	XMLName    xml.Name        `xml:"Properties"` // Important when adding attributes, always use uppercase for it, otherwise unmarshalling might not work
	Properties []OOXMLProperty `xml:"property"`
}

type OOXMLProperty struct {
	Fmtid  string `xml:"fmtid,attr"`
	Pid    string `xml:"pid,attr"`
	Name   string `xml:"name,attr"`
	ValStr string `xml:"lpwstr"`
}

// Key builds the property key addressing this custom property in the property system
func (p *OOXMLProperty) Key() (propertystore.PropertyKey, error) {
	return propertystore.ParseKey(fmt.Sprintf("%s %s", p.Fmtid, p.Pid))
}

// getOOXMLProperties gets the properties specified in the metadata (docProps/custom.xml) file of an OOXML-file
// (Office Open XML)
func getOOXMLProperties(filepath string, logger utils.Logger) (*OOXMLProperties, error) {

	// Open file as zip
	readerZip, errOpen := zip.OpenReader(filepath)
	if errOpen != nil {
		return &OOXMLProperties{}, nil // Is not an error
	}
	defer func() {
		errClose := readerZip.Close()
		if errClose != nil {
			logger.Debugf("Could not close zip reader of '%s': %s", filepath, errClose)
		}
	}()

	// Get the docProps/custom.xml file
	var customPropsXML *zip.File
	for i := range readerZip.File {
		if readerZip.File[i].Name == OOXMLCustomPropertiesFile {
			customPropsXML = readerZip.File[i]
			break
		}
	}

	// Return if file with custom properties was not found, this is not an error, not all files have custom properties
	if customPropsXML == nil {
		return &OOXMLProperties{}, nil
	}

	// Get reader for docProps/custom.xml
	customPropsReader, errOpenProps := customPropsXML.Open()
	if errOpenProps != nil {
		return nil, fmt.Errorf("could not open '%s': %s", OOXMLCustomPropertiesFile, errOpenProps)
	}
	defer func() {
		errPropReaderClose := customPropsReader.Close()
		if errPropReaderClose != nil {
			logger.Debugf("Could not close file reader for '%s' of '%s': %s",
				OOXMLCustomPropertiesFile, filepath, errPropReaderClose)
		}
	}()

	// Get all content of the docProps/custom.xml file
	buf := &bytes.Buffer{}
	_, errCopy := io.Copy(buf, customPropsReader)
	if errCopy != nil {
		return nil, fmt.Errorf("could not get content of '%s': %s", customPropsXML.Name, errCopy)
	}

	// Unmarshal XML content of the docProps/custom.xml file
	return parseOOXMLProperties(buf.Bytes())
}

// parseOOXMLProperties unmarshals the XML content of a docProps/custom.xml file
func parseOOXMLProperties(content []byte) (*OOXMLProperties, error) {
	var customProps OOXMLProperties
	errUnmarshal := xml.Unmarshal(content, &customProps)
	if errUnmarshal != nil {
		return nil, fmt.Errorf("could not unmarshal %s: %s", OOXMLCustomPropertiesFile, errUnmarshal)
	}
	return &customProps, nil
}

// containsSimilar returns true if a property with that name or property key is contained
func (p *OOXMLProperties) containsSimilar(propToTest OOXMLProperty) bool {
	for _, prop := range p.Properties {
		if prop.Name == propToTest.Name || (prop.Fmtid == propToTest.Fmtid && prop.Pid == propToTest.Pid) {
			return true
		}
	}
	return false
}
