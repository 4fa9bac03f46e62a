package api

type HealthResponse struct {
	Status string `json:"status"`
}

type ToolStatus struct {
	Tool      string `json:"tool"`
	Available bool   `json:"available"`
	Path      string `json:"path,omitempty"`
	Hint      string `json:"hint,omitempty"`
}

type EnginesResponse struct {
	Tools     []ToolStatus    `json:"tools"`
	Compress  bool            `json:"compress"`
	PdfToDocx map[string]bool `json:"pdf_to_docx"`
	DocxToPdf map[string]bool `json:"docx_to_pdf"`
}
