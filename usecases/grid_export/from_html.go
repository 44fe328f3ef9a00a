package grid_export

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dhis2/approval-backend/models"
	"github.com/dhis2/approval-backend/pure_utils"
	"github.com/dhis2/approval-backend/utils"
)

const nonBreakingSpace = "\u00a0"

// FromHtml builds one grid per table of the html document. The first row of a table holding cells
// becomes the headers, following rows are kept when they span the same number of columns.
// Returns nil for a blank document.
func FromHtml(
	ctx context.Context,
	document string,
	title string,
	period models.Period,
	unit models.OrganisationUnit,
) ([]*models.Grid, error) {
	document = pure_utils.TrimBom(document)
	if strings.TrimSpace(document) == "" {
		return nil, nil
	}

	root, err := html.Parse(strings.NewReader(document))
	if err != nil {
		return nil, errors.Wrap(models.BadParameterError, fmt.Sprintf("invalid html document: %v", err))
	}

	logger := utils.LoggerFromContext(ctx)
	grids := make([]*models.Grid, 0)

	for _, table := range findElements(root, atom.Table, false) {
		grid := models.NewGrid()
		grid.Title = title
		grid.Subtitle = unit.Name + " " + period.DisplayName()

		firstColumnCount := -1
		for _, row := range findElements(table, atom.Tr, true) {
			cells := rowCells(row)
			count := columnCount(cells)
			if count == 0 {
				logger.WarnContext(ctx, "Ignoring row with no columns")
				continue
			}

			if firstColumnCount == -1 {
				firstColumnCount = count
				for _, cell := range cells {
					grid.AddHeader(models.NewGridHeader(cellValue(cell), false, false))
					if colspan := cellColspan(cell); colspan > 1 {
						grid.AddEmptyHeaders(colspan - 1)
					}
				}
				continue
			}

			if count != firstColumnCount {
				logger.WarnContext(ctx, fmt.Sprintf("Ignoring row which has %d columns since table has %d columns",
					count, firstColumnCount))
				continue
			}

			grid.AddRow()
			for _, cell := range cells {
				grid.AddValue(cellValue(cell))
				if colspan := cellColspan(cell); colspan > 1 {
					grid.AddEmptyValues(colspan - 1)
				}
			}
		}

		grids = append(grids, grid)
	}

	return grids, nil
}

// findElements lists the descendants of node with the given tag, in document order.
// With skipNestedTables, the content of tables found below node is not searched.
func findElements(node *html.Node, tag atom.Atom, skipNestedTables bool) []*html.Node {
	var found []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if child.Type != html.ElementNode {
				continue
			}
			if child.DataAtom == tag {
				found = append(found, child)
			}
			if skipNestedTables && child.DataAtom == atom.Table {
				continue
			}
			walk(child)
		}
	}
	walk(node)
	return found
}

func rowCells(row *html.Node) []*html.Node {
	var cells []*html.Node
	for child := row.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode && (child.DataAtom == atom.Td || child.DataAtom == atom.Th) {
			cells = append(cells, child)
		}
	}
	return cells
}

func cellColspan(cell *html.Node) int {
	for _, attr := range cell.Attr {
		if strings.EqualFold(attr.Key, "colspan") {
			colspan, err := strconv.Atoi(strings.TrimSpace(attr.Val))
			if err != nil {
				return 1
			}
			return colspan
		}
	}
	return 1
}

// columnCount is the number of columns covered by the cells, colspans included.
func columnCount(cells []*html.Node) int {
	count := 0
	for _, cell := range cells {
		count += max(cellColspan(cell), 1)
	}
	return count
}

// cellValue concatenates the text of the cell's children, trimmed and without non-breaking spaces.
func cellValue(cell *html.Node) string {
	var builder strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			switch child.Type {
			case html.TextNode:
				builder.WriteString(child.Data)
			case html.ElementNode:
				walk(child)
			}
		}
	}
	walk(cell)
	return strings.TrimSpace(strings.ReplaceAll(builder.String(), nonBreakingSpace, ""))
}
