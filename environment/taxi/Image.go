package taxi

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

const (
	// CellPixels is the width and height of a grid cell in drawn images
	CellPixels float64 = 80
)

var (
	backgroundColour  = color.RGBA{R: 245, G: 245, B: 245, A: 255}
	gridColour        = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	wallColour        = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	taxiColour        = color.RGBA{R: 250, G: 200, B: 0, A: 255}
	fullTaxiColour    = color.RGBA{R: 40, G: 160, B: 70, A: 255}
	passengerColour   = color.RGBA{R: 90, G: 40, B: 140, A: 255}
	destinationColour = color.RGBA{R: 200, G: 0, B: 160, A: 255}
)

// depotColours are the colours of the R, G, Y, and B depots
var depotColours = [4]color.Color{
	color.RGBA{R: 220, G: 60, B: 60, A: 255},
	color.RGBA{R: 60, G: 170, B: 80, A: 255},
	color.RGBA{R: 230, G: 190, B: 40, A: 255},
	color.RGBA{R: 60, G: 100, B: 220, A: 255},
}

// Draw draws the current state of the environment
func (t *Taxi) Draw() image.Image {
	return Draw(t.state)
}

// SavePNG draws the current state of the environment and saves it as a
// PNG image at path
func (t *Taxi) SavePNG(path string) error {
	dc := gg.NewContextForImage(t.Draw())
	return dc.SavePNG(path)
}

// Draw draws state as an image
func Draw(state int) image.Image {
	w, h := float64(Cols)*CellPixels, float64(Rows)*CellPixels
	dc := gg.NewContext(int(w), int(h))
	dc.SetColor(backgroundColour)
	dc.Clear()

	row, col, passenger, destination := Decode(state)

	// Depots
	for i, depot := range Depots {
		x, y := cellOrigin(depot)
		dc.DrawRectangle(x, y, CellPixels, CellPixels)
		dc.SetColor(depotColours[i])
		dc.Fill()

		dc.SetColor(color.White)
		dc.DrawStringAnchored(depotNames[i], x+CellPixels/6, y+CellPixels/6,
			0.5, 0.5)
	}

	// Destination
	dx, dy := cellOrigin(Depots[destination])
	dc.SetLineWidth(6)
	dc.SetColor(destinationColour)
	dc.DrawRectangle(dx+3, dy+3, CellPixels-6, CellPixels-6)
	dc.Stroke()

	// Grid lines
	dc.SetLineWidth(1)
	dc.SetColor(gridColour)
	for c := 1; c < Cols; c++ {
		dc.DrawLine(float64(c)*CellPixels, 0, float64(c)*CellPixels, h)
	}
	for r := 1; r < Rows; r++ {
		dc.DrawLine(0, float64(r)*CellPixels, w, float64(r)*CellPixels)
	}
	dc.Stroke()

	// Walls, read from the map
	dc.SetLineWidth(6)
	dc.SetColor(wallColour)
	for r := 0; r < Rows; r++ {
		for c := 1; c < Cols; c++ {
			if desc[1+r][2*c] == '|' {
				x := float64(c) * CellPixels
				dc.DrawLine(x, float64(r)*CellPixels, x,
					float64(r+1)*CellPixels)
			}
		}
	}
	dc.DrawRectangle(0, 0, w, h)
	dc.Stroke()

	// Taxi
	tx, ty := cellOrigin(Location{row, col})
	dc.DrawRoundedRectangle(tx+CellPixels/4, ty+CellPixels/3,
		CellPixels/2, CellPixels/3, CellPixels/12)
	if passenger == InTaxi {
		dc.SetColor(fullTaxiColour)
	} else {
		dc.SetColor(taxiColour)
	}
	dc.Fill()

	// Waiting passenger
	if passenger < InTaxi {
		px, py := cellOrigin(Depots[passenger])
		dc.DrawCircle(px+CellPixels*3/4, py+CellPixels*3/4, CellPixels/8)
		dc.SetColor(passengerColour)
		dc.Fill()
	}

	return dc.Image()
}

// cellOrigin returns the pixel coordinates of the top left corner of
// the cell at loc
func cellOrigin(loc Location) (x, y float64) {
	return float64(loc.Col) * CellPixels, float64(loc.Row) * CellPixels
}
