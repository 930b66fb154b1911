package app

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"

	"github.com/vk/buildplan/internal/model"
	"github.com/vk/buildplan/internal/plan"
)

// renderPlan prints the computed descriptions in graph declaration order, so
// repeated runs over the same inputs print byte-identical output.
func renderPlan(w io.Writer, graph *model.Graph, descriptions map[string]*plan.ProductDescription) error {
	heading := color.New(color.Bold)
	section := color.New(color.FgCyan)

	for _, product := range graph.Products {
		desc, ok := descriptions[product.Name]
		if !ok {
			continue
		}
		if _, err := heading.Fprintf(w, "product %s (%s)\n", product.Name, productType(product)); err != nil {
			return err
		}

		printList(w, section, "static targets", targetNames(desc.StaticTargets))
		printList(w, section, "objects", desc.Objects)
		printList(w, section, "dylibs", desc.Dylibs)
		printList(w, section, "link flags", desc.LinkFlags)
		printList(w, section, "binary search paths", desc.BinarySearchPaths)
		printList(w, section, "debug artifacts", desc.DebugArtifacts)

		if len(desc.Tools) > 0 {
			section.Fprintln(w, "  tools:")
			names := make([]string, 0, len(desc.Tools))
			for name := range desc.Tools {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(w, "    %s -> %s\n", name, desc.Tools[name])
			}
		}
		fmt.Fprintln(w)
	}
	return nil
}

func printList(w io.Writer, c *color.Color, label string, items []string) {
	if len(items) == 0 {
		return
	}
	c.Fprintf(w, "  %s:\n", label)
	for _, item := range items {
		fmt.Fprintf(w, "    %s\n", item)
	}
}

func targetNames(targets []*model.Target) []string {
	names := make([]string, 0, len(targets))
	for _, t := range targets {
		names = append(names, t.Name)
	}
	return names
}

func productType(p *model.Product) string {
	if p.Kind == model.ProductLibrary {
		return fmt.Sprintf("library, %s", p.Library)
	}
	return p.Kind.String()
}
