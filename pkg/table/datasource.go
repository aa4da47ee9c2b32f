package table

import "tableflip.dev/statictable/pkg/cell"

var _ DataSource = (*Controller)(nil)

// NumberOfSections implements DataSource. A plain controller always reports
// one section.
func (c *Controller) NumberOfSections() int { return len(c.sections) }

// NumberOfRows implements DataSource.
func (c *Controller) NumberOfRows(section int) int {
	s := c.sectionAt(section)
	if s == nil {
		return 0
	}
	return len(s.items)
}

// CellForRow implements DataSource.
func (c *Controller) CellForRow(p IndexPath) cell.Cell {
	item := c.ItemAtIndexPath(p)
	if item == nil {
		return nil
	}
	return item.Cell()
}

// TitleForHeader implements DataSource.
func (c *Controller) TitleForHeader(section int) string {
	if s := c.sectionAt(section); s != nil {
		return s.HeaderText
	}
	return ""
}

// TitleForFooter implements DataSource.
func (c *Controller) TitleForFooter(section int) string {
	if s := c.sectionAt(section); s != nil {
		return s.FooterText
	}
	return ""
}

// HeightForRow implements DataSource.
func (c *Controller) HeightForRow(p IndexPath) int {
	if item := c.ItemAtIndexPath(p); item != nil {
		return item.MinimumHeight
	}
	return 0
}

// CanSelectRow implements DataSource.
func (c *Controller) CanSelectRow(p IndexPath) bool {
	item := c.ItemAtIndexPath(p)
	return item != nil && item.Selectable
}

// DidSelectRow implements DataSource.
func (c *Controller) DidSelectRow(p IndexPath) {
	item := c.ItemAtIndexPath(p)
	if item == nil {
		return
	}
	c.logf("DidSelectRow %s id=%q", p, item.Identifier)
	item.PerformSelectionAction()
}

// CanEditRow implements DataSource.
func (c *Controller) CanEditRow(p IndexPath) bool {
	item := c.ItemAtIndexPath(p)
	return item != nil && item.Editable
}

// CommitDelete implements DataSource. The item is removed before its
// OnDelete callback runs.
func (c *Controller) CommitDelete(p IndexPath) {
	item := c.ItemAtIndexPath(p)
	if item == nil || !item.Editable {
		return
	}
	c.logf("CommitDelete %s id=%q", p, item.Identifier)
	item.RemoveFromContainer(AnimationAutomatic)
	if item.OnDelete != nil {
		item.OnDelete(item)
	}
}

// ValueChanged implements DataSource.
func (c *Controller) ValueChanged(p IndexPath) {
	if item := c.ItemAtIndexPath(p); item != nil {
		item.SendValueChanged()
	}
}

// ReturnKey implements DataSource.
func (c *Controller) ReturnKey(p IndexPath) {
	if item := c.ItemAtIndexPath(p); item != nil {
		item.SendReturnKey()
	}
}
