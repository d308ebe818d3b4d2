package extract

import (
	"testing"

	"github.com/akiyama/shirabe/internal/models"
)

func block(t models.BlockType, runs ...string) models.Block {
	b := models.Block{Type: t}
	for _, r := range runs {
		b.RichText = append(b.RichText, models.RichText{PlainText: r})
	}
	return b
}

func TestText(t *testing.T) {
	tests := []struct {
		name   string
		blocks []models.Block
		want   string
	}{
		{"nil input", nil, ""},
		{"empty input", []models.Block{}, ""},
		{
			"single paragraph",
			[]models.Block{block(models.BlockParagraph, "Hello", " world")},
			"Hello world",
		},
		{
			"all recognized kinds",
			[]models.Block{
				block(models.BlockHeading1, "Title"),
				block(models.BlockHeading2, "Section"),
				block(models.BlockHeading3, "Subsection"),
				block(models.BlockParagraph, "Body text"),
				block(models.BlockBulletedListItem, "bullet"),
				block(models.BlockNumberedListItem, "numbered"),
				block(models.BlockQuote, "quoted"),
			},
			"Title Section Subsection Body text bullet numbered quoted",
		},
		{
			"unrecognized block keeps its join slot",
			[]models.Block{
				block(models.BlockParagraph, "before"),
				block("divider"),
				block(models.BlockParagraph, "after"),
			},
			"before  after",
		},
		{
			"unrecognized block with runs contributes nothing",
			[]models.Block{
				block("code", "fmt.Println()"),
				block(models.BlockParagraph, "text"),
			},
			" text",
		},
		{
			"run missing plain text",
			[]models.Block{block(models.BlockParagraph, "a", "", "b")},
			"ab",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Text(tt.blocks); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestText_Idempotent(t *testing.T) {
	blocks := []models.Block{
		block(models.BlockHeading1, "Title"),
		block("divider"),
		block(models.BlockParagraph, "Body"),
	}
	first := Text(blocks)
	second := Text(blocks)
	if first != second {
		t.Errorf("Text not idempotent: %q vs %q", first, second)
	}
}
