package mcp

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     func() string
}

var docResources = []docResource{
	{
		URI:         "activitylog://docs/records",
		Name:        "docs_records",
		Title:       "Activity record format",
		Description: "Fields stored for each activity and how the log is bounded.",
		Content:     func() string { return recordsDoc },
	},
	{
		URI:         "activitylog://docs/actions",
		Name:        "docs_actions",
		Title:       "Action icon catalog",
		Description: "Every known action key with its display icon.",
		Content:     actionsDoc,
	},
}

const recordsDoc = `# Activity records

Each activity is stored as one JSON object:

| field | notes |
|---|---|
| id | act_<YYYYMMDDHHMMSS>_<8 hex>, unique per activity |
| timestamp | local time, 2006-01-02T15:04:05.000000 |
| userId, userName | who performed the action |
| action | action key, e.g. job_create |
| targetType, targetId, targetName | entity acted upon, null when not given |
| details | free text, null when not given |
| icon | display glyph |
| extraData | extra structured fields, omitted when empty |

The log is ordered newest first and keeps only the latest 2000 activities.
Recorded activities are never edited.
`

func actionsDoc() string {
	var b strings.Builder
	b.WriteString("# Action icons\n\n| action | icon |\n|---|---|\n")
	for _, icon := range listActionIcons().Icons {
		fmt.Fprintf(&b, "| %s | %s |\n", icon.Action, icon.Icon)
	}
	fmt.Fprintf(&b, "\nUnknown actions use %s.\n", listActionIcons().DefaultIcon)
	return b.String()
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		content := doc.Content()

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     content,
				}},
			}, nil
		})
	}
}
