package attendance

// Cell addresses one (employee, day) slot.
type Cell struct {
	EmployeeID string
	Day        int
}

// DragState is either Idle or Dragging.
type DragState interface {
	dragState()
}

// Idle means no drag is in progress.
type Idle struct{}

// Dragging carries the cell the drag started on and the status being spread.
type Dragging struct {
	Anchor Cell
	Paint  DayStatus
}

func (Idle) dragState()     {}
func (Dragging) dragState() {}

// Painter turns pointer and keyboard gestures into matrix mutations. The
// painted value is decided by the first touched cell and spread across the
// drag range.
type Painter struct {
	sheet  *Sheet
	drag   DragState
	anchor *Cell
}

func (p *Painter) reset() {
	p.drag = Idle{}
	p.anchor = nil
}

// State returns the current drag state.
func (p *Painter) State() DragState { return p.drag }

// Anchor returns the last touched cell used for range fills.
func (p *Painter) Anchor() (Cell, bool) {
	if p.anchor == nil {
		return Cell{}, false
	}
	return *p.anchor, true
}

// PointerDown handles a press on a cell. With shift held and an anchor on
// the same row it fills the range atomically; otherwise it starts a drag.
func (p *Painter) PointerDown(c Cell, shift bool) error {
	if err := p.check(c); err != nil {
		return err
	}
	s := p.sheet

	if shift && p.anchor != nil {
		if p.anchor.EmployeeID != c.EmployeeID {
			return nil
		}
		status := s.matrix.Get(p.anchor.EmployeeID, p.anchor.Day)
		if status == Unmarked {
			status = Present
		}
		s.matrix.Fill(c.EmployeeID, p.anchor.Day, c.Day, status)
		p.setAnchor(c)
		s.admit(c.EmployeeID)
		return nil
	}

	paint := s.matrix.Get(c.EmployeeID, c.Day).toggled()
	p.drag = Dragging{Anchor: c, Paint: paint}
	s.matrix.Set(c.EmployeeID, c.Day, paint)
	s.admit(c.EmployeeID)
	return nil
}

// PointerEnter extends an active drag to the hovered cell. Cells outside the
// anchor's row are ignored.
func (p *Painter) PointerEnter(c Cell) {
	d, ok := p.drag.(Dragging)
	if !ok || c.EmployeeID != d.Anchor.EmployeeID {
		return
	}
	if c.Day < 1 || c.Day > p.sheet.Days() {
		return
	}
	p.sheet.matrix.Fill(c.EmployeeID, d.Anchor.Day, c.Day, d.Paint)
}

// PointerUp ends an active drag, leaving its anchor as the range anchor.
// Leaving the grid surface is handled the same way.
func (p *Painter) PointerUp() {
	d, ok := p.drag.(Dragging)
	if !ok {
		return
	}
	p.setAnchor(d.Anchor)
	p.drag = Idle{}
}

// Click toggles a single cell without starting a drag.
func (p *Painter) Click(c Cell) error {
	if err := p.check(c); err != nil {
		return err
	}
	s := p.sheet
	s.matrix.Set(c.EmployeeID, c.Day, s.matrix.Get(c.EmployeeID, c.Day).toggled())
	p.setAnchor(c)
	s.admit(c.EmployeeID)
	return nil
}

// FillToAnchor is the keyboard form of a shift-press: fill from the range
// anchor to c on the same row. Without an anchor it does nothing.
func (p *Painter) FillToAnchor(c Cell) error {
	if p.anchor == nil {
		return nil
	}
	return p.PointerDown(c, true)
}

func (p *Painter) check(c Cell) error {
	s := p.sheet
	if c.Day < 1 || c.Day > s.Days() || c.EmployeeID == "" {
		return reject(ErrOutOfRange, "day %d is outside %s", c.Day, s.Month().Label())
	}
	return s.checkMutable(c.EmployeeID)
}

func (p *Painter) setAnchor(c Cell) {
	anchor := c
	p.anchor = &anchor
}
