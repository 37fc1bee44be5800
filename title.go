package htmlprint

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// applyTitle returns src with its <title> replaced by title. Chrome copies
// the document title into the PDF's metadata.
func applyTitle(src, title string) (string, error) {
	root, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return "", fmt.Errorf("htmlprint: parsing markup: %w", err)
	}
	head := findElement(root, atom.Head)
	if head == nil {
		// html.Parse always synthesizes a head.
		return "", fmt.Errorf("htmlprint: markup has no head element")
	}

	for n := head.FirstChild; n != nil; {
		next := n.NextSibling
		if n.Type == html.ElementNode && n.DataAtom == atom.Title {
			head.RemoveChild(n)
		}
		n = next
	}

	t := &html.Node{Type: html.ElementNode, DataAtom: atom.Title, Data: "title"}
	t.AppendChild(&html.Node{Type: html.TextNode, Data: title})
	head.InsertBefore(t, head.FirstChild)

	var b strings.Builder
	if err := html.Render(&b, root); err != nil {
		return "", fmt.Errorf("htmlprint: rendering markup: %w", err)
	}
	return b.String(), nil
}

// resolveDestination turns a destination into an absolute file path.
// Plain paths and file:// URLs are accepted.
func resolveDestination(dst string) (string, error) {
	if dst == "" {
		return "", fmt.Errorf("htmlprint: empty destination")
	}
	if strings.HasPrefix(dst, "file:") {
		u, err := url.Parse(dst)
		if err != nil {
			return "", fmt.Errorf("htmlprint: invalid destination %q: %w", dst, err)
		}
		if u.Host != "" && u.Host != "localhost" {
			return "", fmt.Errorf("htmlprint: destination %q is not on this host", dst)
		}
		if u.Path == "" {
			return "", fmt.Errorf("htmlprint: destination %q has no path", dst)
		}
		dst = filepath.FromSlash(u.Path)
	}
	abs, err := filepath.Abs(dst)
	if err != nil {
		return "", fmt.Errorf("htmlprint: resolving path: %w", err)
	}
	return abs, nil
}
