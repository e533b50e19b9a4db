package render

// drawCaption writes each caption line in bold at its planned origin.
func drawCaption(s Surface, faces *faceCache, lines []CaptionLine, p palette) error {
	s.SetColor(p.border)
	for _, l := range lines {
		if l.Size <= 0 || l.Text == "" {
			continue
		}
		face, err := faces.face(l.Size, true)
		if err != nil {
			return err
		}
		s.SetFontFace(face)
		s.DrawStringAnchored(l.Text, l.X, l.Y, 0, 1)
	}
	return nil
}
