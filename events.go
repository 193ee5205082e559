package mdpage

import (
	"io"

	"golang.org/x/net/html"
)

// EventKind discriminates tag stream events.
type EventKind uint8

const (
	// EventOpen is an opening tag.
	EventOpen EventKind = iota
	// EventClose is a closing tag.
	EventClose
	// EventText is a span of character data, already entity-decoded.
	EventText
	// EventEntity is a decoded entity reference delivered separately
	// from surrounding text. Handled identically to EventText.
	EventEntity
)

// Attr is a single attribute on an opening tag.
type Attr struct {
	Key string
	Val string
}

// Event is one step of the flat tag stream consumed by the block
// builder. Tag is set for open and close events and is always lower
// case. Text is set for text and entity events and contains the final
// decoded characters; no entity references survive past this point.
type Event struct {
	Kind  EventKind
	Tag   string
	Attrs []Attr
	Text  string
}

// feedMarkup tokenizes markup from r and hands each event to emit in
// stream order. Self-closing tags are delivered as an open event
// immediately followed by a close event. Comments and doctypes are
// skipped. Entity references are decoded exactly once, by the
// tokenizer.
func feedMarkup(r io.Reader, emit func(Event)) error {
	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			err := z.Err()
			if err == io.EOF {
				return nil
			}
			return err
		case html.StartTagToken:
			name, hasAttr := z.TagName()
			emit(Event{Kind: EventOpen, Tag: string(name), Attrs: tagAttrs(z, hasAttr)})
		case html.EndTagToken:
			name, _ := z.TagName()
			emit(Event{Kind: EventClose, Tag: string(name)})
		case html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			tag := string(name)
			emit(Event{Kind: EventOpen, Tag: tag, Attrs: tagAttrs(z, hasAttr)})
			emit(Event{Kind: EventClose, Tag: tag})
		case html.TextToken:
			emit(Event{Kind: EventText, Text: string(z.Text())})
		}
	}
}

func tagAttrs(z *html.Tokenizer, hasAttr bool) []Attr {
	if !hasAttr {
		return nil
	}
	var attrs []Attr
	for {
		key, val, more := z.TagAttr()
		attrs = append(attrs, Attr{Key: string(key), Val: string(val)})
		if !more {
			return attrs
		}
	}
}
