package panel

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/transitpanel/transitpanel/pkg/providers"
	"github.com/transitpanel/transitpanel/pkg/store"
	"github.com/transitpanel/transitpanel/pkg/transit"
	"golang.org/x/exp/slices"
)

// Node is one element of the rendered display tree.
type Node struct {
	Tag      string
	Class    string
	Style    string
	Text     string
	Children []Node
}

// HTML serialises the node tree. Text content is escaped.
func (n Node) HTML() string {
	var builder strings.Builder
	n.write(&builder)

	return builder.String()
}

func (n Node) write(builder *strings.Builder) {
	builder.WriteString("<" + n.Tag)
	if n.Class != "" {
		builder.WriteString(fmt.Sprintf(" class=%q", n.Class))
	}
	if n.Style != "" {
		builder.WriteString(fmt.Sprintf(" style=%q", n.Style))
	}
	builder.WriteString(">")

	if n.Text != "" {
		builder.WriteString(html.EscapeString(n.Text))
	}

	for _, child := range n.Children {
		child.write(builder)
	}

	builder.WriteString("</" + n.Tag + ">")
}

// Renderer assembles the panel tree from the current store contents. It holds
// no state of its own and performs no business logic beyond string assembly.
type Renderer struct {
	Stops    []transit.StopConfig
	Registry *providers.Registry
	Options  Options
	Catalog  *Catalog
}

// Panel renders the whole panel: one block per configured stop, in operator
// order. nextPoll drives the optional header countdown; a zero nextPoll
// suppresses it.
func (r Renderer) Panel(st *store.Store, now time.Time, nextPoll time.Time) Node {
	stops := make([]transit.StopConfig, len(r.Stops))
	copy(stops, r.Stops)
	slices.SortStableFunc(stops, func(a, b transit.StopConfig) int {
		return a.Order - b.Order
	})

	root := Node{Tag: "div", Class: "transitpanel"}

	for _, stop := range stops {
		adapter := r.Registry.For(stop.Type)
		if adapter == nil {
			continue
		}

		index := adapter.Index(stop)
		if index == "" {
			continue
		}

		switch stop.Type {
		case transit.StopTypeTraffic:
			info, found := st.Traffic(index)
			root.Children = append(root.Children, r.trafficBlock(stop, info, found, st.LastUpdate(index), now, nextPoll))
		case transit.StopTypeVelib:
			var history []transit.BikeStationSnapshot
			if st.History() != nil {
				history = st.History().Entries(index)
			}
			root.Children = append(root.Children, r.bikeBlock(stop, history, now, nextPoll))
		default:
			set, lastUpdate, found := st.Schedules(index)
			root.Children = append(root.Children, r.scheduleBlock(stop, set, lastUpdate, found, now, nextPoll))
		}
	}

	return root
}

func (r Renderer) scheduleBlock(stop transit.StopConfig, set *transit.ScheduleSet, lastUpdate time.Time, found bool, now time.Time, nextPoll time.Time) Node {
	block := Node{Tag: "div", Class: "panel-block"}
	block.Children = append(block.Children, r.header(stop.DisplayLabel(), lastUpdate, now, nextPoll))

	table := Node{Tag: "table", Class: "schedules"}

	if !found || set == nil {
		table.Children = append(table.Children, r.placeholderRow())
		block.Children = append(block.Children, table)

		return block
	}

	rows := Consolidate(stop.DisplayLabel(), set, lastUpdate, now, r.Options, r.Catalog)
	if len(rows) == 0 {
		table.Children = append(table.Children, r.placeholderRow())
	}

	for _, row := range rows {
		cellStyle := ""
		if row.Opacity != 1.0 {
			cellStyle = fmt.Sprintf("opacity: %.2f", row.Opacity)
		}

		table.Children = append(table.Children, Node{Tag: "tr", Children: []Node{
			{Tag: "td", Class: "destination", Style: cellStyle, Text: row.DestinationText},
			{Tag: "td", Class: "status", Text: row.StatusText},
			{Tag: "td", Class: "departure", Style: cellStyle, Text: row.DepartureText},
		}})
	}

	block.Children = append(block.Children, table)

	return block
}

func (r Renderer) trafficBlock(stop transit.StopConfig, info *transit.TrafficInfo, found bool, lastUpdate time.Time, now time.Time, nextPoll time.Time) Node {
	block := Node{Tag: "div", Class: "panel-block"}
	block.Children = append(block.Children, r.header(stop.DisplayLabel(), lastUpdate, now, nextPoll))

	if !found || info == nil {
		block.Children = append(block.Children, r.placeholder())

		return block
	}

	statusClass := "traffic traffic-" + strings.ToLower(strings.ReplaceAll(string(info.Status), "_", "-"))

	summary := info.Summary
	if summary == "" {
		summary = r.Catalog.TrafficText(info.Status)
	}

	block.Children = append(block.Children, Node{Tag: "div", Class: statusClass, Children: []Node{
		{Tag: "span", Class: "line", Text: info.Line},
		{Tag: "span", Class: "summary", Text: summary},
	}})

	if info.Message != "" && info.Status != transit.TrafficStatusOK {
		block.Children = append(block.Children, Node{Tag: "div", Class: "traffic-message", Text: info.Message})
	}

	return block
}

func (r Renderer) bikeBlock(stop transit.StopConfig, history []transit.BikeStationSnapshot, now time.Time, nextPoll time.Time) Node {
	block := Node{Tag: "div", Class: "panel-block"}

	if len(history) == 0 {
		block.Children = append(block.Children, r.header(stop.DisplayLabel(), time.Time{}, now, nextPoll))
		block.Children = append(block.Children, r.placeholder())

		return block
	}

	latest := history[len(history)-1]

	label := stop.Label
	if label == "" {
		label = latest.Name
	}

	bikes, _ := r.Catalog.Translate("bikes")
	slots, _ := r.Catalog.Translate("slots")

	block.Children = append(block.Children, r.header(label, latest.LastUpdate, now, nextPoll))
	block.Children = append(block.Children, Node{Tag: "div", Class: "bike-station", Children: []Node{
		{Tag: "span", Class: "bikes", Text: fmt.Sprintf("%d %s", latest.Bike, bikes)},
		{Tag: "span", Class: "empty", Text: fmt.Sprintf("%d %s", latest.Empty, slots)},
		{Tag: "span", Class: "total", Text: fmt.Sprintf("/ %d", latest.Total)},
	}})

	return block
}

// header builds a block's title line, optionally suffixed with a countdown to
// the next poll and the last-update clock time.
func (r Renderer) header(label string, lastUpdate time.Time, now time.Time, nextPoll time.Time) Node {
	text := label

	if r.Options.ShowSecondsToNext && !nextPoll.IsZero() {
		remaining := int(nextPoll.Sub(now).Seconds())
		if remaining < 0 {
			remaining = 0
		}
		text = fmt.Sprintf("%s, next in %ds", text, remaining)
	}

	if r.Options.ShowLastUpdateTime && !lastUpdate.IsZero() {
		text = fmt.Sprintf("%s @ %s", text, lastUpdate.Format("15:04:05"))
	}

	return Node{Tag: "div", Class: "header", Text: text}
}

func (r Renderer) placeholder() Node {
	loading, _ := r.Catalog.Translate("loading")

	return Node{Tag: "div", Class: "placeholder", Text: loading}
}

func (r Renderer) placeholderRow() Node {
	return Node{Tag: "tr", Children: []Node{r.placeholderCell()}}
}

func (r Renderer) placeholderCell() Node {
	loading, _ := r.Catalog.Translate("loading")

	return Node{Tag: "td", Class: "placeholder", Text: loading}
}
