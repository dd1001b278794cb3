package script

// SECTIONS { output-section-description ... }
func (p *Parser) readSections() {
	p.expect("{")
	p.until("}", p.readOutputSectionDescription)
}

// name : { file(pattern ...) ... }
//
// The input-file token before each pattern list is read and dropped; the
// patterns are attached to the output section only.
func (p *Parser) readOutputSectionDescription() {
	name := p.next().Text
	if p.failed() {
		return
	}
	sections := p.cfg.OutputSections
	sections.Ensure(name)

	p.expect(":")
	p.expect("{")
	p.until("}", func() {
		p.next() // input file name
		p.expect("(")
		p.until(")", func() {
			pattern := p.next()
			if !p.failed() {
				sections.Append(name, pattern.Text)
			}
		})
	})
}
