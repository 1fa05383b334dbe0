package render

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"jobforge-backend/resume/model"
)

const wmlNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

const docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
	`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`

const docxRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`

// The document-level rels part carries no relationships, but readers
// (including the docx library the profile loader uses) require it to exist.
const docxDocumentRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`

// Letter page and margins in twips.
const docxSectPr = `<w:sectPr><w:pgSz w:w="12240" w:h="15840"/><w:pgMar w:top="720" w:right="864" w:bottom="720" w:left="864"/></w:sectPr>`

// renderDOCX builds the document package from scratch. Every part is
// written with a zero modification time and in a fixed order so the
// archive bytes depend only on the resume content.
func renderDOCX(resume model.TailoredResume) ([]byte, error) {
	documentXML := buildDocumentXML(resume)
	if err := validateDocumentXML(documentXML); err != nil {
		return nil, err
	}

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", docxContentTypes},
		{"_rels/.rels", docxRels},
		{"word/_rels/document.xml.rels", docxDocumentRels},
		{"word/document.xml", documentXML},
	}

	var out bytes.Buffer
	writer := zip.NewWriter(&out)
	for _, part := range parts {
		dst, err := writer.CreateHeader(&zip.FileHeader{
			Name:   part.name,
			Method: zip.Deflate,
		})
		if err != nil {
			return nil, err
		}
		if _, err := dst.Write([]byte(part.content)); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

type docxRun struct {
	text   string
	bold   bool
	italic bool
	size   int // half-points
	color  string
}

type docxPara struct {
	runs   []docxRun
	center bool
	indent int // twips
}

func buildDocumentXML(resume model.TailoredResume) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	b.WriteString(`<w:document xmlns:w="` + wmlNamespace + `"><w:body>`)

	writePara(&b, docxPara{center: true, runs: []docxRun{
		{text: resume.Name, bold: true, size: 44, color: "1E3A5F"},
	}})
	if resume.Title != "" {
		writePara(&b, docxPara{center: true, runs: []docxRun{
			{text: resume.Title, size: 24, color: "2563EB"},
		}})
	}
	writePara(&b, docxPara{center: true, runs: []docxRun{
		{text: resume.Email + " | " + resume.Phone + " | " + resume.Location, size: 18, color: "6B7280"},
	}})
	if resume.LinkedIn != "" {
		writePara(&b, docxPara{center: true, runs: []docxRun{
			{text: resume.LinkedIn, size: 18, color: "6B7280"},
		}})
	}
	writePara(&b, docxPara{})

	writeHeading(&b, "Professional Summary")
	writePara(&b, docxPara{runs: []docxRun{
		{text: resume.Summary, size: 20, color: "374151"},
	}})

	writeHeading(&b, "Technical Skills")
	for _, group := range resume.Skills {
		writePara(&b, docxPara{runs: []docxRun{
			{text: group.Category + ": ", bold: true, size: 20, color: "374151"},
			{text: group.Items, size: 20, color: "374151"},
		}})
	}

	writeHeading(&b, "Professional Experience")
	for _, exp := range resume.Experience {
		writePara(&b, docxPara{runs: []docxRun{
			{text: exp.Title, bold: true, size: 20, color: "1A1A1A"},
			{text: " | " + exp.Company + " | " + exp.Dates, size: 20, color: "374151"},
		}})
		for _, point := range exp.Points {
			writePara(&b, docxPara{indent: 360, runs: []docxRun{
				{text: "• " + point, size: 18, color: "374151"},
			}})
		}
	}

	b.WriteString(docxSectPr)
	b.WriteString(`</w:body></w:document>`)
	return b.String()
}

func writeHeading(b *strings.Builder, heading string) {
	writePara(b, docxPara{runs: []docxRun{
		{text: heading, bold: true, size: 22, color: "1E3A5F"},
	}})
}

func writePara(b *strings.Builder, p docxPara) {
	b.WriteString("<w:p>")
	if p.center || p.indent > 0 {
		b.WriteString("<w:pPr>")
		if p.center {
			b.WriteString(`<w:jc w:val="center"/>`)
		}
		if p.indent > 0 {
			fmt.Fprintf(b, `<w:ind w:left="%d"/>`, p.indent)
		}
		b.WriteString("</w:pPr>")
	}
	for _, r := range p.runs {
		b.WriteString("<w:r>")
		if r.bold || r.italic || r.size > 0 || r.color != "" {
			b.WriteString("<w:rPr>")
			if r.bold {
				b.WriteString("<w:b/>")
			}
			if r.italic {
				b.WriteString("<w:i/>")
			}
			if r.color != "" {
				fmt.Fprintf(b, `<w:color w:val="%s"/>`, r.color)
			}
			if r.size > 0 {
				fmt.Fprintf(b, `<w:sz w:val="%d"/><w:szCs w:val="%d"/>`, r.size, r.size)
			}
			b.WriteString("</w:rPr>")
		}
		b.WriteString(`<w:t xml:space="preserve">`)
		b.WriteString(escapeXMLText(r.text))
		b.WriteString(`</w:t></w:r>`)
	}
	b.WriteString("</w:p>")
}

var xmlTextEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

func escapeXMLText(s string) string {
	return xmlTextEscaper.Replace(s)
}

// validateDocumentXML rejects malformed markup and nested paragraphs
// before the document is zipped.
func validateDocumentXML(xmlText string) error {
	decoder := xml.NewDecoder(strings.NewReader(xmlText))
	paragraphDepth := 0
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("document.xml parse failed: %w", err)
		}
		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Space == wmlNamespace && t.Name.Local == "p" {
				if paragraphDepth > 0 {
					return errors.New("document.xml has nested <w:p>")
				}
				paragraphDepth++
			}
		case xml.EndElement:
			if t.Name.Space == wmlNamespace && t.Name.Local == "p" && paragraphDepth > 0 {
				paragraphDepth--
			}
		}
	}
	return nil
}
