package domain

// Instrument identifies one of the traded flower contracts.
type Instrument string

const (
	InstrumentRose     Instrument = "Rose"
	InstrumentLavender Instrument = "Lavender"
	InstrumentTulip    Instrument = "Tulip"
	InstrumentOrchid   Instrument = "Orchid"
	InstrumentLotus    Instrument = "Lotus"
)

// Instruments returns the full tradable set in listing order.
func Instruments() []Instrument {
	return []Instrument{
		InstrumentRose,
		InstrumentLavender,
		InstrumentTulip,
		InstrumentOrchid,
		InstrumentLotus,
	}
}

// ParseInstrument maps a raw symbol to an Instrument.
func ParseInstrument(symbol string) (Instrument, bool) {
	switch Instrument(symbol) {
	case InstrumentRose, InstrumentLavender, InstrumentTulip, InstrumentOrchid, InstrumentLotus:
		return Instrument(symbol), true
	default:
		return "", false
	}
}
