// Package render formats track records for the terminal.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/net/html"

	"ponyget/internal/media"
)

var (
	titleColor = color.New(color.FgCyan, color.Bold)
	labelColor = color.New(color.Faint)
)

// PlainText flattens markup in user-supplied text. Line breaks survive,
// tags are dropped and entities decoded. Text without markup is returned as is.
func PlainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}

	doc.Find("script, style").Remove()
	doc.Find("br").Each(func(_ int, sel *goquery.Selection) {
		sel.ReplaceWithNodes(newline())
	})
	doc.Find("p, div, li").Each(func(_ int, sel *goquery.Selection) {
		sel.AppendNodes(newline())
	})

	return strings.TrimRight(doc.Text(), "\n")
}

func newline() *html.Node {
	return &html.Node{Type: html.TextNode, Data: "\n"}
}

// Track writes a human-readable summary of t.
func Track(w io.Writer, t *media.Track) {
	title := media.String(t.Title)
	if title == "" {
		title = t.ID
	}
	titleColor.Fprintln(w, title)

	field(w, "ID", t.ID)
	field(w, "Uploader", media.String(t.Uploader))
	field(w, "Uploader URL", media.String(t.UploaderURL))
	field(w, "Genre", media.String(t.Genre))
	if t.Duration != nil {
		field(w, "Duration", FormatDuration(*t.Duration))
	}
	if t.Timestamp != nil {
		field(w, "Published", time.Unix(*t.Timestamp, 0).UTC().Format("2006-01-02 15:04:05 MST"))
	}
	if t.ViewCount != nil {
		field(w, "Plays", strconv.FormatInt(*t.ViewCount, 10))
	}
	if t.LikeCount != nil {
		field(w, "Favourites", strconv.FormatInt(*t.LikeCount, 10))
	}

	if best := media.BestFormat(t.Formats, "best"); best != nil {
		field(w, "Best format", media.String(best.Name))
	}
	for _, th := range t.Thumbnails {
		if th.Preference == -1 {
			field(w, "Cover", th.URL)
			break
		}
	}

	if t.Description != nil && *t.Description != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, PlainText(*t.Description))
	}
}

func field(w io.Writer, label, value string) {
	if value == "" {
		return
	}
	labelColor.Fprintf(w, "%-13s", label+":")
	fmt.Fprintln(w, value)
}

// Formats writes the format list as a table, in the order given.
func Formats(w io.Writer, formats []media.Format) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Ext", "Format", "Preference", "URL"})
	table.SetAutoWrapText(false)
	table.SetRowLine(false)

	for _, f := range formats {
		table.Append([]string{
			orDash(f.Ext),
			orDash(f.Name),
			strconv.Itoa(f.Preference),
			orDash(f.URL),
		})
	}
	table.Render()
}

func orDash(v *string) string {
	if v == nil || *v == "" {
		return "-"
	}
	return *v
}

// FormatDuration renders seconds as m:ss or h:mm:ss, dropping fractions.
func FormatDuration(seconds float64) string {
	total := int(seconds)
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
