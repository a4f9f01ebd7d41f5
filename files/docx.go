package files

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

const docxBody = "word/document.xml"

// docxText joins the text of every paragraph of a Word document with
// newlines, empty paragraphs included.
func docxText(path string) (string, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	body, err := readZipFile(rc.File, docxBody)
	if err != nil {
		return "", err
	}
	paras, err := docxParagraphs(body)
	if err != nil {
		return "", err
	}
	return strings.Join(paras, "\n"), nil
}

func readZipFile(files []*zip.File, target string) ([]byte, error) {
	for _, f := range files {
		if f == nil || !strings.EqualFold(f.Name, target) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("arquivo interno não encontrado: %s", target)
}

const wordNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// docxParagraphs returns the text of the paragraphs that are direct children
// of w:body. Table cells, text boxes and DrawingML shapes are left out, and
// so is text nested in them.
func docxParagraphs(body []byte) ([]string, error) {
	dec := xml.NewDecoder(bytes.NewReader(body))
	var (
		stack  []xml.Name
		para   = -1 // depth of the open body paragraph
		skip   = -1 // depth of the text box being skipped
		inText bool
		text   strings.Builder
		out    []string
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth := len(stack)
			var parent xml.Name
			if depth > 0 {
				parent = stack[depth-1]
			}
			stack = append(stack, t.Name)
			if skip >= 0 || t.Name.Space != wordNS {
				continue
			}
			inRun := para >= 0 && parent.Space == wordNS && parent.Local == "r"
			switch t.Name.Local {
			case "p":
				if para < 0 && parent.Space == wordNS && parent.Local == "body" {
					para = depth
					text.Reset()
				}
			case "txbxContent":
				skip = depth
			case "t":
				inText = inRun
			case "tab":
				if inRun {
					text.WriteByte('\t')
				}
			case "br", "cr":
				if inRun {
					text.WriteByte('\n')
				}
			}
		case xml.CharData:
			if inText && skip < 0 {
				text.Write(t)
			}
		case xml.EndElement:
			if len(stack) == 0 {
				continue
			}
			stack = stack[:len(stack)-1]
			depth := len(stack)
			switch {
			case depth == skip:
				skip = -1
			case depth == para:
				out = append(out, text.String())
				para = -1
				inText = false
			case t.Name.Space == wordNS && t.Name.Local == "t":
				inText = false
			}
		}
	}
}
