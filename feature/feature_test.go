package feature

import (
	"strconv"

	"github.com/vlist-tui/vlist"
	"github.com/vlist-tui/vlist/render"
)

type item struct {
	id   string
	text string
}

func (it item) ItemID() string { return it.id }

func makeItems(n int) []item {
	items := make([]item, n)
	for i := range items {
		items[i] = item{id: strconv.Itoa(i), text: "item " + strconv.Itoa(i)}
	}
	return items
}

func baseConfig(n int) vlist.Config[item] {
	c := vlist.DefaultConfig[item]()
	c.Items = makeItems(n)
	c.ContainerSize = 10
	c.Item.Height = func(int) int { return 1 }
	c.Item.Template = func(it item, idx int, cell *render.Cell) string { return it.text }
	return c
}
