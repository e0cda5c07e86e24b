package feed

import (
	"bytes"
	"cmp"
	"fmt"

	"github.com/mmcdole/gofeed"
)

// Parser converts a raw feed document into RawItems. Field selection
// tolerates heterogeneous feed schemas by trying candidate fields in order.
type Parser struct {
	gofeedParser *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{
		gofeedParser: gofeed.NewParser(),
	}
}

func (p *Parser) Run(data []byte) ([]RawItem, error) {
	parsed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	items := make([]RawItem, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		items = append(items, p.normalizeItem(item))
	}

	return items, nil
}

func (p *Parser) normalizeItem(item *gofeed.Item) RawItem {
	raw := RawItem{
		Title:       cmp.Or(item.Title, item.Custom["dc:title"]),
		Link:        cmp.Or(item.Link, item.GUID),
		GUID:        cmp.Or(item.GUID, item.Link),
		Description: cmp.Or(item.Description, item.Custom["summary"]),
		Content:     cmp.Or(item.Content, item.Custom["content:encoded"]),
	}

	if item.PublishedParsed != nil {
		raw.PublishedAt = item.PublishedParsed
	} else if item.UpdatedParsed != nil {
		raw.PublishedAt = item.UpdatedParsed
	}

	if item.Categories != nil {
		raw.Categories = item.Categories
	}

	return raw
}
