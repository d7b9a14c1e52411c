package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/spf13/cobra"

	"github.com/lukasmahr/primal/pkg/geom"
	"github.com/lukasmahr/primal/pkg/layerio"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// inspectCommand creates the inspect command for browsing run layers.
func (c *CLI) inspectCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "inspect [base]",
		Short: "Browse the layers of a previous run",
		Long: `Browse the layers of a previous run.

Takes the base path of a run (the output path without the layer suffix)
and shows per-layer statistics: feature counts, total line length, and
geometry types. Interactive on a terminal; use --plain for piped output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := loadLayerStats(args[0])
			if err != nil {
				return err
			}
			if plain {
				fmt.Println(renderLayerTable(stats, -1))
				return nil
			}
			model := NewLayerBrowserModel(args[0], stats)
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print the stats table without the interactive browser")

	return cmd
}

// layerStats summarizes one persisted layer.
type layerStats struct {
	Name     string
	Path     string
	Features int
	Length   float64
	Types    string
}

// loadLayerStats reads every known layer file under the base path.
func loadLayerStats(base string) ([]layerStats, error) {
	names := []string{
		layerio.LayerInput, layerio.LayerLine, layerio.LayerPrimal,
		layerio.LayerNode, layerio.LayerEdge,
	}

	var stats []layerStats
	for _, name := range names {
		path := layerio.LayerPath(base, name)
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read layer %s: %w", path, err)
		}
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, fmt.Errorf("parse layer %s: %w", path, err)
		}
		stats = append(stats, summarizeLayer(name, path, fc))
	}
	if len(stats) == 0 {
		return nil, fmt.Errorf("no layers found under %s", base)
	}
	return stats, nil
}

func summarizeLayer(name, path string, fc *geojson.FeatureCollection) layerStats {
	s := layerStats{Name: name, Path: path, Features: len(fc.Features)}

	types := map[string]bool{}
	for _, f := range fc.Features {
		if f.Geometry == nil {
			continue
		}
		types[string(f.Geometry.GeoJSONType())] = true
		if ls, ok := f.Geometry.(orb.LineString); ok {
			s.Length += geom.Length(ls)
		}
	}

	names := make([]string, 0, len(types))
	for t := range types {
		names = append(names, t)
	}
	// Deterministic order for display.
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			if names[j] < names[i] {
				names[i], names[j] = names[j], names[i]
			}
		}
	}
	s.Types = strings.Join(names, ", ")
	if s.Types == "" {
		s.Types = "—"
	}
	return s
}

// renderLayerTable renders the stats table, highlighting cursor when >= 0.
func renderLayerTable(stats []layerStats, cursor int) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := [][]string{}
	for i, s := range stats {
		marker := "  "
		if i == cursor {
			marker = "▸ "
		}
		length := "—"
		if s.Length > 0 {
			length = fmt.Sprintf("%.1f", s.Length)
		}
		rows = append(rows, []string{
			marker, s.Name, fmt.Sprintf("%d", s.Features), length, s.Types,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Layer", "Features", "Length", "Geometry").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row == cursor {
				return listSelectedStyle
			}
			return lipgloss.NewStyle()
		})

	return t.Render()
}

// LayerBrowserModel is the bubbletea model for interactive layer browsing.
type LayerBrowserModel struct {
	Base   string
	Layers []layerStats
	Cursor int
}

// NewLayerBrowserModel creates a layer browser over the loaded stats.
func NewLayerBrowserModel(base string, stats []layerStats) LayerBrowserModel {
	return LayerBrowserModel{Base: base, Layers: stats}
}

func (m LayerBrowserModel) Init() tea.Cmd {
	return nil
}

func (m LayerBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Layers)-1 {
				m.Cursor++
			}
		}
	}
	return m, nil
}

func (m LayerBrowserModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Layers: " + m.Base))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")
	b.WriteString(renderLayerTable(m.Layers, m.Cursor))
	b.WriteString("\n\n")

	s := m.Layers[m.Cursor]
	b.WriteString("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(s.Path))
	b.WriteString("\n")

	return b.String()
}
