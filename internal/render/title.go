package render

// drawTitle fills the badge and writes the title in bold inside it.
func drawTitle(s Surface, faces *faceCache, t *TitleBadge, p palette) error {
	fillRect(s, t.Badge, p.badge)
	if t.Size <= 0 {
		return nil
	}

	face, err := faces.face(t.Size, true)
	if err != nil {
		return err
	}
	s.SetFontFace(face)
	s.SetColor(p.border)
	s.DrawStringAnchored(t.Text, t.TextX, t.TextY, 0, 1)
	return nil
}
