package chrome

import (
	"fmt"
	"image"

	"github.com/sirupsen/logrus"

	"github.com/NaveLIL/erez-chrome/logger"
	"github.com/NaveLIL/erez-chrome/models"
)

// FormChrome owns the frame geometry of one window: caption height, resize
// border, corner radius and the silhouette region. It also carries the
// semantic events the message interceptor raises.
type FormChrome struct {
	host Host
	log  *logrus.Entry

	captionHeight       int
	border              models.BorderThickness
	cornerRadius        models.CornerRadius
	adjustWhenMaximized bool

	region          models.Region
	regionValid     bool
	regionMaximized bool
	regionSize      models.Size
	regionRadius    models.CornerRadius
	regionUpdates   int
	mask            *image.Alpha

	paint      listenerList[*PaintEvent]
	sysCommand listenerList[*SysCommandEvent]
	mouseMove  listenerList[*MouseEvent]
	mouseLeave listenerList[*MouseEvent]
	mouseDown  listenerList[*MouseEvent]
	mouseUp    listenerList[*MouseEvent]
}

// NewFormChrome creates the frame geometry engine for host.
func NewFormChrome(host Host, opts Options) (*FormChrome, error) {
	if host == nil {
		return nil, ErrNilHost
	}
	if opts.CaptionHeight < 0 {
		return nil, fmt.Errorf("%w: caption height %d", ErrNegativeValue, opts.CaptionHeight)
	}
	if err := opts.Border.Validate(); err != nil {
		return nil, err
	}
	if err := opts.CornerRadius.Validate(); err != nil {
		return nil, err
	}

	return &FormChrome{
		host:                host,
		log:                 logger.Get().Component("chrome"),
		captionHeight:       opts.CaptionHeight,
		border:              opts.Border,
		cornerRadius:        opts.CornerRadius,
		adjustWhenMaximized: opts.AdjustWhenMaximized,
	}, nil
}

// Host returns the window this chrome draws.
func (fc *FormChrome) Host() Host { return fc.host }

// CaptionHeight returns the caption band height.
func (fc *FormChrome) CaptionHeight() int { return fc.captionHeight }

// SetCaptionHeight changes the caption height and re-runs the frame calculation.
func (fc *FormChrome) SetCaptionHeight(h int) error {
	if h < 0 {
		return fmt.Errorf("%w: caption height %d", ErrNegativeValue, h)
	}
	if h == fc.captionHeight {
		return nil
	}
	fc.captionHeight = h
	fc.frameChanged()
	return nil
}

// Border returns the configured resize border.
func (fc *FormChrome) Border() models.BorderThickness { return fc.border }

// SetBorder changes the configured resize border.
func (fc *FormChrome) SetBorder(b models.BorderThickness) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if b == fc.border {
		return nil
	}
	fc.border = b
	fc.frameChanged()
	return nil
}

// CornerRadius returns the configured corner radius.
func (fc *FormChrome) CornerRadius() models.CornerRadius { return fc.cornerRadius }

// SetCornerRadius changes the silhouette radius and recomputes the region.
func (fc *FormChrome) SetCornerRadius(cr models.CornerRadius) error {
	if err := cr.Validate(); err != nil {
		return err
	}
	if cr == fc.cornerRadius {
		return nil
	}
	fc.cornerRadius = cr
	if fc.host.HandleCreated() {
		fc.UpdateRegion()
		fc.host.InvalidateNonClient()
	}
	return nil
}

// AdjustWhenMaximized reports whether the OS frame border replaces the
// configured border while maximized.
func (fc *FormChrome) AdjustWhenMaximized() bool { return fc.adjustWhenMaximized }

// SetAdjustWhenMaximized toggles maximized border adjustment.
func (fc *FormChrome) SetAdjustWhenMaximized(v bool) {
	if v == fc.adjustWhenMaximized {
		return
	}
	fc.adjustWhenMaximized = v
	fc.regionValid = false
	fc.frameChanged()
}

func (fc *FormChrome) frameChanged() {
	if !fc.host.HandleCreated() {
		return
	}
	fc.host.RecalculateFrame()
	fc.host.InvalidateNonClient()
}

// EffectiveBorder returns the border in use for the current window state.
func (fc *FormChrome) EffectiveBorder() models.BorderThickness {
	return fc.EffectiveBorderFor(fc.host.Geometry())
}

// EffectiveBorderFor returns the border in use for g.
func (fc *FormChrome) EffectiveBorderFor(g Geometry) models.BorderThickness {
	if g.Maximized() && fc.adjustWhenMaximized {
		return fc.host.SystemFrameBorder()
	}
	return fc.border
}

// ClientRectFor returns the client rectangle in window-local coordinates.
func (fc *FormChrome) ClientRectFor(g Geometry) models.Rect {
	return fc.clientRect(g.LocalBounds(), fc.EffectiveBorderFor(g))
}

func (fc *FormChrome) clientRect(r models.Rect, eb models.BorderThickness) models.Rect {
	client := models.Rect{
		Left:   r.Left + eb.Left,
		Top:    r.Top + eb.Top + fc.captionHeight,
		Right:  r.Right - eb.Right,
		Bottom: r.Bottom - eb.Bottom,
	}
	if client.Right < client.Left {
		client.Right = client.Left
	}
	if client.Bottom < client.Top {
		client.Bottom = client.Top
	}
	return client
}

// CaptionRectFor returns the caption band inside the border.
func (fc *FormChrome) CaptionRectFor(g Geometry) models.Rect {
	eb := fc.EffectiveBorderFor(g)
	w := g.Bounds.Width()
	return models.Rect{
		Left:   eb.Left,
		Top:    eb.Top,
		Right:  w - eb.Right,
		Bottom: eb.Top + fc.captionHeight,
	}
}

// IconRectFor returns the square icon area at the left of the caption.
// It reports false when the window has no icon or no control box.
func (fc *FormChrome) IconRectFor(g Geometry) (models.Rect, bool) {
	if fc.captionHeight == 0 || !fc.host.ControlBox() || fc.host.Icon() == nil {
		return models.Rect{}, false
	}
	caption := fc.CaptionRectFor(g)
	return models.Rect{
		Left:   caption.Left,
		Top:    caption.Top,
		Right:  caption.Left + fc.captionHeight,
		Bottom: caption.Bottom,
	}, true
}

// Region returns the last assigned silhouette.
func (fc *FormChrome) Region() models.Region { return fc.region }

// RegionUpdates returns how many times a region was assigned to the host.
func (fc *FormChrome) RegionUpdates() int { return fc.regionUpdates }

// InvalidateRegion forces the next UpdateRegion to reassign the silhouette.
func (fc *FormChrome) InvalidateRegion() {
	fc.regionValid = false
}

// UpdateRegion recomputes the silhouette from the current geometry.
func (fc *FormChrome) UpdateRegion() bool {
	return fc.UpdateRegionFor(fc.host.Geometry())
}

// UpdateRegionFor recomputes the silhouette for g. It returns false when
// neither the size nor the corner radius changed since the last assignment.
func (fc *FormChrome) UpdateRegionFor(g Geometry) bool {
	if g.Minimized() {
		return false
	}
	size := g.Size()

	if g.Maximized() && fc.adjustWhenMaximized {
		if fc.regionValid && fc.regionMaximized && size == fc.regionSize {
			return false
		}
		region := models.Region{
			Kind: models.RegionRect,
			Rect: g.LocalBounds().Inset(fc.host.SystemFrameBorder()),
		}
		fc.regionMaximized = true
		fc.assign(region, size)
		return true
	}

	if fc.regionMaximized {
		// restored from maximized: rebuild the rounded outline
		fc.regionMaximized = false
		fc.regionValid = false
	}

	if fc.regionValid && size == fc.regionSize && fc.cornerRadius == fc.regionRadius {
		return false
	}

	var region models.Region
	if !fc.cornerRadius.IsRectangular() {
		region = models.Region{
			Kind: models.RegionPath,
			Path: models.RoundedPath(size.Width, size.Height, fc.cornerRadius),
		}
	}
	fc.assign(region, size)
	return true
}

func (fc *FormChrome) assign(region models.Region, size models.Size) {
	fc.region = region
	fc.regionValid = true
	fc.regionSize = size
	fc.regionRadius = fc.cornerRadius
	fc.regionUpdates++
	fc.mask = nil
	fc.host.SetRegion(region)
	fc.log.Debugf("Region assigned: kind=%d size=%dx%d", region.Kind, size.Width, size.Height)
}

// silhouetteMask returns the coverage mask of the current region, or nil
// when the window keeps its default rectangle.
func (fc *FormChrome) silhouetteMask(size models.Size) *image.Alpha {
	if fc.region.Kind == models.RegionDefault {
		return nil
	}
	if fc.mask == nil || fc.mask.Bounds().Dx() != size.Width || fc.mask.Bounds().Dy() != size.Height {
		fc.mask = fc.region.Mask(size)
	}
	return fc.mask
}

// OnNonClientPaint registers a paint listener. The returned func removes it.
func (fc *FormChrome) OnNonClientPaint(fn func(*PaintEvent)) func() {
	return fc.paint.add(fn)
}

// OnSystemCommand registers a system command listener.
func (fc *FormChrome) OnSystemCommand(fn func(*SysCommandEvent)) func() {
	return fc.sysCommand.add(fn)
}

// OnNonClientMouseMove registers a pointer move listener.
func (fc *FormChrome) OnNonClientMouseMove(fn func(*MouseEvent)) func() {
	return fc.mouseMove.add(fn)
}

// OnNonClientMouseLeave registers a pointer leave listener.
func (fc *FormChrome) OnNonClientMouseLeave(fn func(*MouseEvent)) func() {
	return fc.mouseLeave.add(fn)
}

// OnNonClientMouseDown registers a left-button-down listener.
func (fc *FormChrome) OnNonClientMouseDown(fn func(*MouseEvent)) func() {
	return fc.mouseDown.add(fn)
}

// OnNonClientMouseUp registers a left-button-up listener.
func (fc *FormChrome) OnNonClientMouseUp(fn func(*MouseEvent)) func() {
	return fc.mouseUp.add(fn)
}
