package dashboard

import (
	"context"
	"errors"
	"sync"

	"shelter-dashboard/internal/domain/animals"
	"shelter-dashboard/internal/domain/predictions"
)

// AnimalsFetcher es lo que Board necesita para cargar registros (Client lo implementa).
type AnimalsFetcher interface {
	Animals(ctx context.Context, preset animals.RescuePreset) ([]animals.Record, error)
}

// Predictor es lo que Board necesita para pedir una predicción (Client lo implementa).
type Predictor interface {
	Predict(ctx context.Context, req predictions.Request) (predictions.Result, error)
}

// PredictionPanel es el estado del panel de predicción.
type PredictionPanel struct {
	Loading     bool
	Probability *float64
	Err         error
}

// Snapshot es una foto consistente del Board.
type Snapshot struct {
	View       ViewState
	Records    []animals.Record
	Page       Page
	LoadErr    error
	Loading    bool
	Form       predictions.Request
	Map        LatLng
	SelectedID string
	Prediction PredictionPanel
}

// Board coordina la vista con los requests asíncronos. Cada acción emite un ticket y
// la respuesta solo se aplica si sigue siendo la última; si falla, los datos previos quedan.
type Board struct {
	mu sync.Mutex

	view    ViewState
	records []animals.Record
	loadErr error
	loading bool

	form       predictions.Request
	mapCenter  LatLng
	selectedID string
	prediction PredictionPanel

	loads    Sequencer
	predicts Sequencer
}

func NewBoard() *Board {
	return &Board{
		view:      NewViewState(),
		records:   []animals.Record{},
		form:      DefaultForm(),
		mapCenter: DefaultMapCenter,
	}
}

func (b *Board) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	return Snapshot{
		View:       b.view,
		Records:    animals.CloneAll(b.records),
		Page:       b.view.Apply(b.records),
		LoadErr:    b.loadErr,
		Loading:    b.loading,
		Form:       b.form,
		Map:        b.mapCenter,
		SelectedID: b.selectedID,
		Prediction: b.prediction,
	}
}

// Update aplica una transformación pura de la vista (filtro, orden, página).
func (b *Board) Update(fn func(ViewState) ViewState) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.view = fn(b.view)
}

// Load recarga con el preset dado. El preset y la página 1 se aplican solo si la carga
// sale bien; si falla, la vista y los datos previos quedan intactos.
// Devuelve false si la respuesta llegó tarde y se descartó.
func (b *Board) Load(ctx context.Context, f AnimalsFetcher, preset animals.RescuePreset) (bool, error) {
	b.mu.Lock()
	b.loading = true
	b.loadErr = nil
	t := b.loads.Next()
	b.mu.Unlock()

	recs, err := f.Animals(ctx, preset)

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.loads.IsCurrent(t) {
		return false, err
	}
	b.loading = false
	if err != nil {
		b.loadErr = err
		return true, err
	}
	b.records = recs
	b.view = b.view.WithRescueType(preset)
	return true, nil
}

// Select autocompleta el formulario y mueve el mapa. Limpia la predicción mostrada.
func (b *Board) Select(r animals.Record) Selection {
	b.mu.Lock()
	defer b.mu.Unlock()

	sel := SelectRecord(r, b.form)
	b.form = sel.Form
	b.selectedID = sel.AnimalID
	b.prediction = PredictionPanel{}
	// Invalida cualquier predicción en vuelo.
	b.predicts.Next()
	if sel.Location != nil {
		b.mapCenter = *sel.Location
		b.loadErr = nil
	}
	return sel
}

func (b *Board) SetForm(req predictions.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.form = req
}

// Predict valida localmente y pide la predicción del formulario actual.
// Al empezar se borra el valor anterior; un error deja el panel sin valor.
func (b *Board) Predict(ctx context.Context, p Predictor) (bool, error) {
	b.mu.Lock()
	form := b.form
	b.prediction = PredictionPanel{Loading: true}
	t := b.predicts.Next()
	if err := form.Validate(); err != nil {
		b.prediction = PredictionPanel{Err: err}
		b.mu.Unlock()
		return true, err
	}
	b.mu.Unlock()

	res, err := p.Predict(ctx, form)

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.predicts.IsCurrent(t) {
		return false, err
	}
	if err != nil {
		b.prediction = PredictionPanel{Err: err}
		return true, err
	}
	if res.AdoptionProbability == nil {
		err := errors.New("response missing adoption_probability")
		b.prediction = PredictionPanel{Err: err}
		return true, err
	}
	b.prediction = PredictionPanel{Probability: res.AdoptionProbability}
	return true, nil
}
