// Package report draws the end-of-day summary card.
package report

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"strconv"

	"habit_tracker/internal/models"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Card geometry.
const (
	Width  = 600
	Height = 400

	marginX    = 20
	indentX    = 40
	titleY     = 20
	statsY     = 70
	statsStep  = 25
	sectionGap = 40
	listStep   = 20
)

// ContentType is the media type produced by Render.
const ContentType = "image/png"

var (
	background = color.RGBA{30, 30, 60, 255}
	titleColor = color.RGBA{255, 255, 0, 255}
	white      = color.RGBA{255, 255, 255, 255}
	doneColor  = color.RGBA{100, 255, 100, 255}
	notColor   = color.RGBA{255, 100, 100, 255}
	progColor  = color.RGBA{200, 200, 255, 255}
	doneHead   = color.RGBA{150, 255, 150, 255}
	doneItem   = color.RGBA{200, 255, 200, 255}
	leftHead   = color.RGBA{255, 180, 180, 255}
	leftItem   = color.RGBA{255, 150, 150, 255}
)

// Filename is the download name of a user's card.
func Filename(userID int) string {
	return fmt.Sprintf("summary_%d.png", userID)
}

// LeftHabits lists titles in s.Habits that do not appear in s.DoneHabits.
// Matching is by title, so distinct habits sharing a title are conflated.
func LeftHabits(s models.Summary) []string {
	done := make(map[string]struct{}, len(s.DoneHabits))
	for _, t := range s.DoneHabits {
		done[t] = struct{}{}
	}
	left := make([]string, 0, len(s.Habits))
	for _, t := range s.Habits {
		if _, ok := done[t]; !ok {
			left = append(left, t)
		}
	}
	return left
}

// Draw renders s onto a new Width x Height image. Lines beyond the bottom edge are clipped.
func Draw(s models.Summary) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, Width, Height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: background}, image.Point{}, draw.Src)

	face := basicfont.Face7x13
	text := func(x, y int, c color.Color, s string) {
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(c),
			Face: face,
			// y is the top of the line, the drawer wants the baseline
			Dot: fixed.P(x, y+face.Ascent),
		}
		d.DrawString(s)
	}

	text(marginX, titleY, titleColor, "[Day summary] "+s.Date)

	y := statsY
	text(marginX, y, white, "[All habits]: "+strconv.Itoa(s.TotalHabits))
	y += statsStep
	text(marginX, y, doneColor, "[Done]: "+strconv.Itoa(s.Completed))
	y += statsStep
	text(marginX, y, notColor, "[Not done]: "+strconv.Itoa(s.NotCompleted))
	y += statsStep
	text(marginX, y, progColor, "[Progress]: "+strconv.FormatFloat(s.Percent, 'f', -1, 64)+"%")
	y += sectionGap

	text(marginX, y, doneHead, "[Done]:")
	y += listStep
	for _, title := range s.DoneHabits {
		text(indentX, y, doneItem, "- "+title)
		y += listStep
	}

	text(marginX, y, leftHead, "[Left]:")
	y += listStep
	for _, title := range LeftHabits(s) {
		text(indentX, y, leftItem, "- "+title)
		y += listStep
	}

	return img
}

// Render writes s as a PNG card to w.
func Render(w io.Writer, s models.Summary) error {
	if err := png.Encode(w, Draw(s)); err != nil {
		return fmt.Errorf("encode summary png: %w", err)
	}
	return nil
}
