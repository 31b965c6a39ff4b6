// Package docx writes documents as DOCX (Office Open XML) packages.
//
// The package is built by hand from a handful of parts: document.xml with
// the body, styles.xml with a fixed style sheet, numbering.xml with one
// numbering instance per numbered list, relationships, the package
// properties and one media file per embedded image.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"github.com/beevik/etree"

	"github.com/tsawler/docs2docx/model"
)

// Write encodes doc as a DOCX package to out.
func Write(out io.Writer, doc *model.Document) error {
	if doc == nil {
		doc = model.NewDocument()
	}

	w := newWriter()
	body, err := w.documentPart(doc)
	if err != nil {
		return fmt.Errorf("building document: %w", err)
	}

	zw := zip.NewWriter(out)
	parts := []struct {
		name string
		data func() ([]byte, error)
	}{
		{partContentTypes, marshal(contentTypes())},
		{partRootRels, marshal(rootRelationships())},
		{partDocument, serialize(body)},
		{partDocumentRels, marshal(w.relationships())},
		{partStyles, serialize(stylesPart())},
		{partNumbering, marshal(w.numbering.xml())},
		{partCore, marshal(coreProperties(doc.Metadata))},
		{partApp, marshal(appProperties(doc))},
	}
	for _, p := range parts {
		data, err := p.data()
		if err != nil {
			zw.Close()
			return fmt.Errorf("encoding %s: %w", p.name, err)
		}
		if err := writeEntry(zw, p.name, data); err != nil {
			zw.Close()
			return err
		}
	}
	for _, m := range w.media {
		if err := writeEntry(zw, m.name, m.data); err != nil {
			zw.Close()
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing archive: %w", err)
	}
	return nil
}

// WriteFile writes doc to path, replacing any existing file.
func WriteFile(path string, doc *model.Document) error {
	var buf bytes.Buffer
	if err := Write(&buf, doc); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func writeEntry(zw *zip.Writer, name string, data []byte) error {
	f, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

func marshal(v any) func() ([]byte, error) {
	return func() ([]byte, error) {
		data, err := xml.Marshal(v)
		if err != nil {
			return nil, err
		}
		return append([]byte(xml.Header), data...), nil
	}
}

func serialize(doc *etree.Document) func() ([]byte, error) {
	return doc.WriteToBytes
}
