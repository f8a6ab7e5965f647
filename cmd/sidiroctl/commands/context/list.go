package context

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/WKolaj/SIDIRO-sub006/cmd/sidiroctl/cmdutil"
	"github.com/WKolaj/SIDIRO-sub006/internal/cli/credentials"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored contexts",
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	store, err := credentials.NewStore()
	if err != nil {
		return fmt.Errorf("failed to initialize credential store: %w", err)
	}

	names := store.ListContexts()
	current := store.GetCurrentContextName()

	list := &contextList{store: store, names: names, current: current}
	return cmdutil.PrintOutput(os.Stdout, list.resources(), len(names) == 0,
		"No contexts stored. Run 'sidiroctl login' first.", list)
}

// contextList renders stored contexts as a table.
type contextList struct {
	store   *credentials.Store
	names   []string
	current string
}

// contextInfo is the JSON/YAML view of one context. Tokens are never
// included in the output.
type contextInfo struct {
	Name      string `json:"name"`
	ServerURL string `json:"serverUrl"`
	Current   bool   `json:"current"`
	Expired   bool   `json:"expired"`
}

func (l *contextList) resources() []contextInfo {
	infos := make([]contextInfo, 0, len(l.names))
	for _, name := range l.names {
		ctx, err := l.store.GetContext(name)
		if err != nil {
			continue
		}
		infos = append(infos, contextInfo{
			Name:      name,
			ServerURL: ctx.ServerURL,
			Current:   name == l.current,
			Expired:   ctx.IsExpired(),
		})
	}
	return infos
}

func (l *contextList) Headers() []string {
	return []string{"CURRENT", "NAME", "SERVER", "EXPIRED"}
}

func (l *contextList) Rows() [][]string {
	rows := make([][]string, 0, len(l.names))
	for _, info := range l.resources() {
		marker := ""
		if info.Current {
			marker = "*"
		}
		rows = append(rows, []string{
			marker,
			info.Name,
			info.ServerURL,
			cmdutil.BoolToYesNo(info.Expired),
		})
	}
	return rows
}
