package filter

// Bank applies a highpass and a lowpass filter in series to band-limit a
// signal, emulating telephone bandwidth. Either stage may be absent.
// The bank itself is immutable; callers pass their own BankState so that
// independent channels or buffer chunks never share delay lines.
type Bank struct {
	highPass *Chain
	lowPass  *Chain
}

// BankState carries the delay lines of both stages across chunks.
type BankState struct {
	highPass *ChainState
	lowPass  *ChainState
}

// NewBank designs the band-limiting cascade. A nil spec skips that stage
// entirely (a zero cutoff in the caller's configuration maps to nil here).
func NewBank(highPassSpec, lowPassSpec *Spec) (*Bank, error) {
	b := &Bank{}

	if highPassSpec != nil {
		hp, err := HighPass(*highPassSpec)
		if err != nil {
			return nil, err
		}
		b.highPass = hp
	}

	if lowPassSpec != nil {
		lp, err := LowPass(*lowPassSpec)
		if err != nil {
			return nil, err
		}
		b.lowPass = lp
	}

	return b, nil
}

// NewState returns a cold-start state for the bank. The first Order()
// samples after a cold start carry the usual IIR transient; this is
// accepted rather than corrected.
func (b *Bank) NewState() *BankState {
	s := &BankState{}
	if b.highPass != nil {
		s.highPass = b.highPass.NewState()
	}
	if b.lowPass != nil {
		s.lowPass = b.lowPass.NewState()
	}
	return s
}

// Reset clears the state for an independent channel pass.
func (s *BankState) Reset() {
	if s.highPass != nil {
		s.highPass.Reset()
	}
	if s.lowPass != nil {
		s.lowPass.Reset()
	}
}

// Process band-limits buf in place, highpass first, then lowpass.
func (b *Bank) Process(buf []float64, s *BankState) {
	if b.highPass != nil {
		b.highPass.Process(buf, s.highPass)
	}
	if b.lowPass != nil {
		b.lowPass.Process(buf, s.lowPass)
	}
}
