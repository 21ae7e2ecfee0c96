package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"comicview/internal/viewer"
)

// transitionTravel is how far, as a fraction of the window width, a page
// slides in on navigation
const transitionTravel = 0.25

// ebitenFullscreen drives the window's full-screen mode
type ebitenFullscreen struct{}

func (ebitenFullscreen) Supported() bool { return true }

func (ebitenFullscreen) Enter() error {
	ebiten.SetFullscreen(true)
	return nil
}

func (ebitenFullscreen) Exit() error {
	ebiten.SetFullscreen(false)
	return nil
}

// Game is the ebiten host for one reading surface
type Game struct {
	config       Config
	configStatus ConfigLoadResult

	viewer  *viewer.Viewer
	images  *ImageManager
	sources []PageSource

	keybindingManager   *KeybindingManager
	mousebindingManager *MousebindingManager
	inputHandler        *InputHandler
	renderer            *Renderer

	width, height  int
	layout         screenLayout
	thumbStart     int
	thumbsWereOpen bool
	hostFullscreen bool

	showHelp           bool
	overlayMessage     string
	overlayMessageTime time.Time

	lastCursor       int
	transitionFrame  int
	transitionOffset float64

	sliderPreview  int
	sliderDragging bool

	lastSnapshot *frameSnapshot
	quit         bool
}

// NewGame wires a viewer over the collected pages
func NewGame(sources []PageSource, status ConfigLoadResult) *Game {
	config := status.Config
	g := &Game{
		config:       config,
		configStatus: status,
		sources:      sources,
		images:       NewImageManager(config.CacheSize, config.PreloadEnabled),
		width:        config.WindowWidth,
		height:       config.WindowHeight,
	}
	g.images.SetPages(sources)

	g.keybindingManager = NewKeybindingManager(config.Keybindings)
	g.mousebindingManager = NewMousebindingManager(config.Mousebindings, config.MouseSettings)

	initial := config.InitialPage
	if initial == readingStartPage {
		initial = viewer.ReadingStart(len(sources), config.direction())
	}

	var logger *log.Logger
	if debugEnabled {
		logger = log.New(os.Stderr, "viewer: ", log.LstdFlags)
	}

	g.viewer = viewer.New(viewer.Options{
		Pages:              pageValues(sources),
		Direction:          config.direction(),
		InitialCurrentPage: initial,
		InitialIsExpansion: config.InitialExpansion,
		SwitchingRatio:     config.SwitchingRatio,
		ShowPageIndicator:  config.ShowPageIndicator,
		Text:               config.Text.viewerText(),
		Viewport:           viewer.Size{Width: float64(g.width), Height: float64(g.height)},
		DoubleTapWindow:    time.Duration(config.MouseSettings.DoubleTapTime) * time.Millisecond,
		DoubleTapRadius:    config.MouseSettings.DoubleTapRadius,
		Callbacks: viewer.Callbacks{
			OnChangeCurrentPage: func(page int) {
				debugLog("current page: %d", page)
				g.updateTitle()
			},
			OnChangeExpansion: func(on bool) {
				debugLog("expansion: %v", on)
			},
			OnClickCenter: func() {
				debugLog("center click")
			},
		},
		Fullscreen: ebitenFullscreen{},
		Preloader:  g.images,
		Logger:     logger,
	})
	g.lastCursor = g.viewer.CurrentPage()

	g.inputHandler = NewInputHandler(g, g, g.keybindingManager, g.mousebindingManager)
	g.renderer = NewRenderer(g)
	g.relayout()
	g.updateTitle()

	if config.Fullscreen {
		g.viewer.EnterFullscreen()
		g.hostFullscreen = true
	}
	return g
}

func pageValues(sources []PageSource) []viewer.Page {
	pages := make([]viewer.Page, len(sources))
	for i, s := range sources {
		pages[i] = s
	}
	return pages
}

func (g *Game) updateTitle() {
	if g.viewer == nil {
		return
	}
	ebiten.SetWindowTitle(fmt.Sprintf("comicview - %s", g.viewer.Indicator()))
}

func (g *Game) relayout() {
	g.layout = computeLayout(float64(g.width), float64(g.height), g.viewer, g.thumbStart)
}

// currentLogical returns the first caller page on screen
func (g *Game) currentLogical() int {
	seq := g.viewer.Sequence()
	current := -1
	for _, slot := range g.viewer.VisibleSlots() {
		if l := seq.Logical(slot); l >= 0 && (current < 0 || l < current) {
			current = l
		}
	}
	return current
}

func (g *Game) Update() error {
	if g.quit {
		g.images.Stop()
		return ebiten.Termination
	}

	// Full-screen changes made by the window manager
	if on := ebiten.IsFullscreen(); on != g.hostFullscreen {
		g.hostFullscreen = on
		if on != g.viewer.IsFullscreen() {
			g.viewer.Dispatch(viewer.FullscreenChanged{On: on})
		}
	}

	if len(g.sources) > 0 {
		g.inputHandler.HandleInput()
	}

	// Open the thumbnail grid on the page holding the current page
	if g.viewer.IsShownThumbnails() && !g.thumbsWereOpen {
		g.thumbStart = 0
		g.relayout()
		g.thumbStart = thumbPageStart(g.currentLogical(), g.layout.thumbPerPage)
	}
	g.thumbsWereOpen = g.viewer.IsShownThumbnails()

	g.updateTransition()
	g.relayout()
	return nil
}

// updateTransition starts or advances the page slide
func (g *Game) updateTransition() {
	frames := g.config.TransitionFrames
	cursor := g.viewer.CurrentPage()
	if cursor != g.lastCursor {
		if frames > 0 && g.viewer.Animate() {
			g.transitionFrame = frames
			// Moving up the sequence brings the next slot in from the left
			g.transitionOffset = -transitionTravel * float64(g.width)
			if cursor < g.lastCursor {
				g.transitionOffset = -g.transitionOffset
			}
		} else {
			g.transitionFrame = 0
			g.transitionOffset = 0
		}
		g.lastCursor = cursor
		return
	}
	if g.transitionFrame > 0 {
		g.transitionFrame--
		g.transitionOffset = g.transitionOffset * float64(g.transitionFrame) / float64(g.transitionFrame+1)
	}
}

func (g *Game) snapshot() *frameSnapshot {
	v := g.viewer
	zx, zy := v.ZoomOrigin()
	overlayActive := g.overlayMessage != "" && time.Since(g.overlayMessageTime) < overlayMessageDuration
	return &frameSnapshot{
		Cursor:        v.CurrentPage(),
		SingleView:    v.IsSingleView(),
		Expansion:     v.IsExpansion(),
		Fullscreen:    v.IsFullscreen(),
		Zoomed:        v.IsZoomed(),
		ZoomX:         zx,
		ZoomY:         zy,
		Chrome:        v.IsShownChrome(),
		Slider:        v.IsShownSlider(),
		Thumbnails:    v.IsShownThumbnails(),
		ThumbStart:    g.thumbStart,
		Indicator:     v.ShowPageIndicator(),
		Help:          g.showHelp,
		Direction:     int(v.Direction()),
		WindowWidth:   g.width,
		WindowHeight:  g.height,
		PagesCount:    len(g.sources),
		Overlay:       g.overlayMessage,
		OverlayActive: overlayActive,
		Transitioning: g.transitionFrame > 0,
		Loaded:        g.images.Loaded(),
		SliderPreview: g.sliderPreview,
		SliderDrag:    g.sliderDragging,
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.snapshot()
	if snap.Equals(g.lastSnapshot) {
		return
	}
	g.renderer.Draw(screen)
	g.lastSnapshot = snap
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.viewer.Dispatch(viewer.Resized{Width: float64(outsideWidth), Height: float64(outsideHeight)})
		g.relayout()
	}
	return outsideWidth, outsideHeight
}

func (g *Game) showOverlayMessage(message string) {
	g.overlayMessage = message
	g.overlayMessageTime = time.Now()
}

// InputActions implementation

func (g *Game) Quit() {
	g.quit = true
}

func (g *Game) ToggleHelp() {
	g.showHelp = !g.showHelp
}

func (g *Game) TogglePageIndicator() {
	g.viewer.TogglePageIndicator()
}

func (g *Game) Escape() {
	switch {
	case g.showHelp:
		g.showHelp = false
	case g.viewer.IsShownThumbnails():
		g.viewer.DismissThumbnails()
	case g.viewer.IsShownSlider():
		g.viewer.DismissSlider()
	default:
		g.viewer.Dispatch(viewer.KeyPress{Key: viewer.KeyEscape})
	}
}

func (g *Game) PageLeft() {
	g.viewer.Dispatch(viewer.KeyPress{Key: viewer.KeyArrowLeft})
}

func (g *Game) PageRight() {
	g.viewer.Dispatch(viewer.KeyPress{Key: viewer.KeyArrowRight})
}

func (g *Game) NavigateNext() {
	if g.viewer.IsShownThumbnails() {
		g.scrollThumbnails(1)
		return
	}
	g.viewer.Next()
}

func (g *Game) NavigatePrevious() {
	if g.viewer.IsShownThumbnails() {
		g.scrollThumbnails(-1)
		return
	}
	g.viewer.Prev()
}

func (g *Game) scrollThumbnails(delta int) {
	per := g.layout.thumbPerPage
	if per <= 0 {
		return
	}
	start := g.thumbStart + delta*per
	if start < 0 || start >= len(g.sources) {
		return
	}
	g.thumbStart = start
}

func (g *Game) JumpFirst() {
	n := g.viewer.Sequence().Len()
	g.viewer.JumpTo(viewer.ReadingStart(n, g.viewer.Direction()))
}

func (g *Game) JumpLast() {
	n := g.viewer.Sequence().Len()
	last := n - 1
	if g.viewer.Direction() == viewer.LTR {
		last = 0
	}
	g.viewer.JumpTo(last)
}

func (g *Game) ToggleExpansion() {
	g.viewer.Dispatch(viewer.ButtonPressed{Button: viewer.ButtonExpansion})
}

func (g *Game) ToggleFullscreen() {
	if g.viewer.IsFullscreen() {
		g.viewer.Dispatch(viewer.ButtonPressed{Button: viewer.ButtonFullscreenExit})
	} else {
		g.viewer.Dispatch(viewer.ButtonPressed{Button: viewer.ButtonFullscreenEnter})
	}
}

func (g *Game) ToggleSlider() {
	g.viewer.Dispatch(viewer.ButtonPressed{Button: viewer.ButtonMove})
}

func (g *Game) ToggleThumbnails() {
	g.viewer.Dispatch(viewer.ButtonPressed{Button: viewer.ButtonThumbnails})
}

func (g *Game) ToggleChrome() {
	g.viewer.ToggleChrome()
}

func (g *Game) ToggleReadingDirection() {
	dir := viewer.LTR
	if g.viewer.Direction() == viewer.LTR {
		dir = viewer.RTL
	}
	g.viewer.SetDirection(dir)
	g.config.Direction = dir.String()
	g.showOverlayMessage("Reading direction: " + dir.String())
}

// CycleSortMethod re-sorts the deck and keeps the current page on screen
func (g *Game) CycleSortMethod() {
	current := g.currentLogical()
	var keep PageSource
	if current >= 0 && current < len(g.sources) {
		keep = g.sources[current]
	}

	strategies := GetAllSortStrategies()
	g.config.SortMethod = (g.config.SortMethod + 1) % len(strategies)
	g.sources = GetSortStrategy(g.config.SortMethod).Sort(g.sources)
	g.images.SetPages(g.sources)
	g.viewer.SetPages(pageValues(g.sources))

	for i, s := range g.sources {
		if s == keep {
			g.viewer.JumpTo(g.viewer.Sequence().IndexOf(i))
			break
		}
	}
	g.showOverlayMessage("Sort: " + getSortMethodName(g.config.SortMethod))
}

// RenderState / InputState implementation

func (g *Game) Viewer() *viewer.Viewer { return g.viewer }

func (g *Game) Images() *ImageManager { return g.images }

func (g *Game) ScreenLayout() screenLayout { return g.layout }

func (g *Game) TransitionOffset() float64 { return g.transitionOffset }

func (g *Game) SliderPreview() (int, bool) { return g.sliderPreview, g.sliderDragging }

func (g *Game) SetSliderPreview(value int, dragging bool) {
	g.sliderPreview, g.sliderDragging = value, dragging
}

func (g *Game) IsShowingHelp() bool { return g.showHelp }

func (g *Game) GetOverlayMessage() string { return g.overlayMessage }

func (g *Game) GetOverlayMessageTime() time.Time { return g.overlayMessageTime }

func (g *Game) GetFontSize() float64 { return g.config.HelpFontSize }

func (g *Game) GetConfigStatus() ConfigLoadResult { return g.configStatus }

func (g *Game) GetKeybindings() map[string][]string { return g.keybindingManager.GetKeybindings() }

func (g *Game) GetMousebindings() map[string][]string {
	return g.mousebindingManager.GetMousebindings()
}
