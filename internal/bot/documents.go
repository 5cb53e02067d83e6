package bot

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const (
	termsFileName        = "terms_and_conditions.txt"
	supportGuideFileName = "support_guide.txt"

	noDocumentsFallback = "No additional documentation available."
)

// LoadDocuments reads the static policy documents from dir and returns
// them as one combined text block with section headers.
func LoadDocuments(dir string, logger *zap.Logger) string {
	var combined strings.Builder

	if text, err := os.ReadFile(filepath.Join(dir, termsFileName)); err == nil {
		combined.WriteString("=== TERMS AND CONDITIONS ===\n")
		combined.Write(text)
		combined.WriteString("\n\n")
		logger.Info("loaded terms and conditions document")
	}

	if text, err := os.ReadFile(filepath.Join(dir, supportGuideFileName)); err == nil {
		combined.WriteString("=== SUPPORT GUIDE ===\n")
		combined.Write(text)
		combined.WriteString("\n\n")
		logger.Info("loaded support guide document")
	}

	if combined.Len() == 0 {
		logger.Warn("no support documents found", zap.String("dir", dir))
		return noDocumentsFallback
	}

	return combined.String()
}
