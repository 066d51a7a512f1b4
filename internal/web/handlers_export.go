package web

import (
	"bytes"
	"context"
	"net/http"
)

func (s *Server) handlePersonsCSV(w http.ResponseWriter, r *http.Request) error {
	return s.export(w, r, s.deps.Exporter.CSV, "application/octet-stream", "attachment", "persons.csv")
}

func (s *Server) handlePersonsExcel(w http.ResponseWriter, r *http.Request) error {
	return s.export(w, r, s.deps.Exporter.Excel, "application/vnd.ms-excel", "attachment", "persons.xlsx")
}

// handlePersonsPDF shows the PDF in the browser rather than downloading it.
func (s *Server) handlePersonsPDF(w http.ResponseWriter, r *http.Request) error {
	return s.export(w, r, s.deps.Exporter.PDF, "application/pdf", "inline", "persons.pdf")
}

func (s *Server) export(w http.ResponseWriter, r *http.Request, build func(context.Context) (*bytes.Reader, error), contentType, disposition, filename string) error {
	content, err := build(r.Context())
	if err != nil {
		return err
	}
	return sendFile(w, content, content.Size(), contentType, disposition, filename)
}
