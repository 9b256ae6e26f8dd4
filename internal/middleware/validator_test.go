package middleware

import "testing"

func TestValidatePDFFilename(t *testing.T) {
	valid := []string{"report.pdf", "2024 audit.pdf", "a.b.pdf"}
	for _, name := range valid {
		if err := ValidatePDFFilename(name); err != nil {
			t.Errorf("%q should be accepted: %v", name, err)
		}
	}

	invalid := []string{"", "  ", "report.txt", "report.PDF", "pdf", "report.pdf.exe"}
	for _, name := range invalid {
		if err := ValidatePDFFilename(name); err == nil {
			t.Errorf("%q should be rejected", name)
		}
	}
}

func TestValidateFileSize(t *testing.T) {
	if err := ValidateFileSize(100, 1000); err != nil {
		t.Errorf("size under cap should pass: %v", err)
	}
	if err := ValidateFileSize(2000, 1000); err == nil {
		t.Error("size over cap should fail")
	}
	if err := ValidateFileSize(2000, 0); err != nil {
		t.Errorf("zero cap disables the check: %v", err)
	}
}

func TestSanitizeArtifactKey(t *testing.T) {
	cases := map[string]string{
		"report.pdf":          "report.pdf",
		"../../etc/passwd":    "passwd",
		"my audit (v2).pdf":   "my_audit__v2_.pdf",
		"":                    "upload.pdf",
	}
	for in, want := range cases {
		if got := SanitizeArtifactKey(in); got != want {
			t.Errorf("SanitizeArtifactKey(%q) = %q, want %q", in, got, want)
		}
	}
}
