package dashboard

import "sync/atomic"

// Ticket identifica un request asíncrono emitido por la vista.
type Ticket uint64

// Sequencer descarta respuestas viejas: solo se aplica la respuesta del último ticket emitido.
// Es seguro para uso concurrente.
type Sequencer struct {
	last atomic.Uint64
}

func (s *Sequencer) Next() Ticket {
	return Ticket(s.last.Add(1))
}

func (s *Sequencer) IsCurrent(t Ticket) bool {
	return t != 0 && uint64(t) == s.last.Load()
}
