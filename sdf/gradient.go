package sdf

// Gradient returns the row (gy) and column (gx) derivatives of f.
// Interior cells use central differences, border cells one-sided
// differences. An axis of length 1 has a zero derivative.
// Both outputs are row-major with f's shape.
func Gradient(f *Field) (gy, gx []float32) {
	w, h := f.Width, f.Height
	gy = make([]float32, len(f.Values))
	gx = make([]float32, len(f.Values))

	if h > 1 {
		for col := 0; col < w; col++ {
			gy[col] = f.At(1, col) - f.At(0, col)
			gy[(h-1)*w+col] = f.At(h-1, col) - f.At(h-2, col)
			for row := 1; row < h-1; row++ {
				gy[row*w+col] = (f.At(row+1, col) - f.At(row-1, col)) / 2
			}
		}
	}

	if w > 1 {
		for row := 0; row < h; row++ {
			base := row * w
			gx[base] = f.At(row, 1) - f.At(row, 0)
			gx[base+w-1] = f.At(row, w-1) - f.At(row, w-2)
			for col := 1; col < w-1; col++ {
				gx[base+col] = (f.At(row, col+1) - f.At(row, col-1)) / 2
			}
		}
	}

	return gy, gx
}
