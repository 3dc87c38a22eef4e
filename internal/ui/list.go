package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/hrfx/internal/models"
)

var (
	_ list.Item = runItem{}
	_ list.Item = fileItem{}
)

// runItem wraps [models.ExportRun] to implement [list.Item].
type runItem struct {
	run *models.ExportRun
}

func (i runItem) FilterValue() string { return i.run.Prefix() }
func (i runItem) Title() string {
	return fmt.Sprintf("#%d %s", i.run.Sequence(), i.run.Prefix())
}
func (i runItem) Description() string {
	return fmt.Sprintf(
		"%s • %d files • %s",
		i.run.Mode(),
		i.run.FileCount(),
		i.run.CreatedAt().Format("2006-01-02 15:04"),
	)
}

// fileItem wraps [models.ExportedFile] to implement [list.Item].
type fileItem struct {
	file models.ExportedFile
}

func (i fileItem) FilterValue() string { return i.file.Path }
func (i fileItem) Title() string       { return i.file.Path }
func (i fileItem) Description() string {
	desc := fmt.Sprintf("%d channels • %d rows", i.file.Channels, i.file.Rows)
	if i.file.Suffix != "" {
		desc = fmt.Sprintf("%s • %s", i.file.Suffix, desc)
	}
	return desc
}
