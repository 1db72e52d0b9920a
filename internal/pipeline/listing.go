package pipeline

import (
	"bytes"
	"html/template"
	"os"
	"path"
	"sort"
)

var listingTmpl = template.Must(template.New("listing").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Index of {{.Path}}</title></head>
<body>
<h1>Index of {{.Path}}</h1>
<ul>
{{- if .Parent}}
<li><a href="{{.Parent}}">../</a></li>
{{- end}}
{{- range .Entries}}
<li><a href="{{.Href}}">{{.Name}}</a></li>
{{- end}}
</ul>
</body>
</html>
`))

type listingEntry struct {
	Name string
	Href string
}

type listingData struct {
	Path    string
	Parent  string
	Entries []listingEntry
}

// renderListing enumerates the immediate children of dir and renders the
// index page. Directories sort before files, each group lexicographic,
// so identical requests produce byte-identical listings.
func renderListing(requestPath, dir string) ([]byte, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	sort.Slice(dirents, func(i, j int) bool {
		if dirents[i].IsDir() != dirents[j].IsDir() {
			return dirents[i].IsDir()
		}
		return dirents[i].Name() < dirents[j].Name()
	})

	base := path.Clean("/" + requestPath)
	data := listingData{Path: base}
	if base != "/" {
		data.Parent = path.Dir(base)
	}

	for _, d := range dirents {
		name := d.Name()
		href := path.Join(base, name)
		if d.IsDir() {
			name += "/"
			href += "/"
		}
		data.Entries = append(data.Entries, listingEntry{Name: name, Href: href})
	}

	var buf bytes.Buffer
	if err := listingTmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
