// Package extract flattens rich-content blocks into plain text for scoring.
package extract

import (
	"strings"

	"github.com/akiyama/shirabe/internal/models"
)

// textBlockTypes are the block kinds that carry searchable text.
var textBlockTypes = map[models.BlockType]bool{
	models.BlockParagraph:        true,
	models.BlockHeading1:         true,
	models.BlockHeading2:         true,
	models.BlockHeading3:         true,
	models.BlockBulletedListItem: true,
	models.BlockNumberedListItem: true,
	models.BlockQuote:            true,
}

// Text converts a block sequence into a single string. Each recognized block
// contributes the concatenation of its rich-text runs; unrecognized blocks
// contribute the empty string but still occupy a join slot. Per-block strings
// are joined with a single space in input order. Nil or empty input yields "".
func Text(blocks []models.Block) string {
	if len(blocks) == 0 {
		return ""
	}
	parts := make([]string, len(blocks))
	for i, block := range blocks {
		if !textBlockTypes[block.Type] {
			continue
		}
		var sb strings.Builder
		for _, run := range block.RichText {
			sb.WriteString(run.PlainText)
		}
		parts[i] = sb.String()
	}
	return strings.Join(parts, " ")
}
