package models

import "encoding/json"

// BlockType is the discriminant of a rich-content block.
type BlockType string

const (
	BlockParagraph        BlockType = "paragraph"
	BlockHeading1         BlockType = "heading_1"
	BlockHeading2         BlockType = "heading_2"
	BlockHeading3         BlockType = "heading_3"
	BlockBulletedListItem BlockType = "bulleted_list_item"
	BlockNumberedListItem BlockType = "numbered_list_item"
	BlockQuote            BlockType = "quote"
)

// RichText is a single text run within a block.
type RichText struct {
	PlainText string `json:"plain_text"`
}

// Block is one unit of rich content from the content store. The wire form
// nests the rich-text payload under a key named after the block type; blocks
// of a type we do not model keep an empty RichText and contribute no text
// downstream.
type Block struct {
	Type     BlockType
	RichText []RichText
}

// UnmarshalJSON decodes the type-keyed wire form. Unknown block types and
// payloads without a rich_text array decode without error.
func (b *Block) UnmarshalJSON(data []byte) error {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return err
	}
	if raw, ok := envelope["type"]; ok {
		if err := json.Unmarshal(raw, (*string)(&b.Type)); err != nil {
			return err
		}
	}
	payload, ok := envelope[string(b.Type)]
	if !ok {
		return nil
	}
	var body struct {
		RichText []RichText `json:"rich_text"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		// Payload shape drifted; treat as an empty block.
		return nil
	}
	b.RichText = body.RichText
	return nil
}
