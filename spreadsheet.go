package sheetengine

// Spreadsheet is a complete workbook: an ordered list of uniquely named
// sheets, workbook metadata, and an active-sheet reference.
type Spreadsheet struct {
	Sheets      []*Sheet
	Metadata    map[string]string
	ActiveSheet string
}

// NewSpreadsheet creates an empty workbook.
func NewSpreadsheet() *Spreadsheet {
	return &Spreadsheet{Metadata: make(map[string]string)}
}

// AddSheet appends a sheet, rejecting duplicate names. The first sheet added
// becomes the active sheet unless one was set already.
func (s *Spreadsheet) AddSheet(sheet *Sheet) error {
	if s.Sheet(sheet.Name) != nil {
		return newStructureError("sheet %q already exists", sheet.Name)
	}
	s.Sheets = append(s.Sheets, sheet)
	if s.ActiveSheet == "" {
		s.ActiveSheet = sheet.Name
	}
	return nil
}

// Sheet returns the sheet with the given name, or nil.
func (s *Spreadsheet) Sheet(name string) *Sheet {
	for _, sheet := range s.Sheets {
		if sheet.Name == name {
			return sheet
		}
	}
	return nil
}

// RemoveSheet deletes the named sheet, reassigning the active sheet to the
// first remaining one when needed.
func (s *Spreadsheet) RemoveSheet(name string) error {
	for i, sheet := range s.Sheets {
		if sheet.Name == name {
			s.Sheets = append(s.Sheets[:i], s.Sheets[i+1:]...)
			if s.ActiveSheet == name {
				s.ActiveSheet = ""
				if len(s.Sheets) > 0 {
					s.ActiveSheet = s.Sheets[0].Name
				}
			}
			return nil
		}
	}
	return newStructureError("sheet %q not found", name)
}

// SheetNames lists sheet names in order.
func (s *Spreadsheet) SheetNames() []string {
	names := make([]string, 0, len(s.Sheets))
	for _, sheet := range s.Sheets {
		names = append(names, sheet.Name)
	}
	return names
}
