package entity

import "time"

// NarrativeReport holds the free-form activity-report sections authored by
// the report owner, one record per Report. Section content may be plain
// text, loosely bulleted text or pasted markup; it is normalized at render
// time, never at write time.
type NarrativeReport struct {
	ID       string `json:"id"`
	ReportID string `json:"report_id"`

	Title                string `json:"title"`
	Background           string `json:"background"`
	PurposeAndObjectives string `json:"purpose_and_objectives"`
	Scope                string `json:"scope"`
	LegalBasis           string `json:"legal_basis"`
	ActivitiesConducted  string `json:"activities_conducted"`
	Achievements         string `json:"achievements"`
	Conclusions          string `json:"conclusions"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NarrativeSection pairs a section heading with its raw content, in
// document order.
type NarrativeSection struct {
	Heading string
	Content string
}

// Sections returns the narrative sections in the order they appear in the
// rendered activity report.
func (n *NarrativeReport) Sections() []NarrativeSection {
	return []NarrativeSection{
		{Heading: "Latar Belakang", Content: n.Background},
		{Heading: "Maksud dan Tujuan", Content: n.PurposeAndObjectives},
		{Heading: "Ruang Lingkup", Content: n.Scope},
		{Heading: "Dasar Hukum", Content: n.LegalBasis},
		{Heading: "Kegiatan yang Dilaksanakan", Content: n.ActivitiesConducted},
		{Heading: "Hasil yang Dicapai", Content: n.Achievements},
		{Heading: "Kesimpulan dan Saran", Content: n.Conclusions},
	}
}
