package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	mrand "math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/Harshitk-cp/nars/internal/bag"
	"github.com/Harshitk-cp/nars/internal/config"
	"github.com/Harshitk-cp/nars/internal/domain"
	"github.com/Harshitk-cp/nars/internal/inference"
	"github.com/Harshitk-cp/nars/internal/memory"
	"github.com/Harshitk-cp/nars/internal/nal"
	"github.com/Harshitk-cp/nars/internal/narsese"
)

var ErrInputQueueFull = errors.New("input queue is full")

const defaultSnapshotTop = 10

// Publisher receives everything that leaves the reasoning core.
type Publisher interface {
	Publish(ev domain.OutputEvent)
	PublishSnapshot(s domain.Snapshot)
}

// Reasoner runs the cognitive cycle. Submit is safe from any goroutine;
// every other method must be called from the single worker driving cycles.
type Reasoner struct {
	params config.Params
	runID  string
	logger *zap.Logger
	out    Publisher
	trace  bool

	rng     *mrand.Rand
	buffer  *bag.Bag[*domain.Task]
	memory  *memory.Memory
	engine  *inference.Engine
	ids     *domain.IDSource
	entropy *ulid.MonotonicEntropy

	cycle      atomic.Uint64
	inputs     chan domain.Input
	inputReady chan struct{}
}

// NewReasoner builds an empty core. The seed makes every probabilistic
// choice reproducible.
func NewReasoner(params config.Params, seed uint64, logger *zap.Logger) *Reasoner {
	rng := mrand.New(mrand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	ids := &domain.IDSource{}
	return &Reasoner{
		params: params,
		runID:  uuid.NewString(),
		logger: logger,
		rng:    rng,
		buffer: bag.New[*domain.Task](bag.Options{
			Capacity: params.BagCapacity,
			Buckets:  params.BagBuckets,
			Rand:     rng,
		}),
		memory: memory.New(memory.Options{
			Capacity:        params.ConceptCapacity,
			Buckets:         params.BagBuckets,
			TableCapacity:   params.TableCapacity,
			RelatedAttempts: params.RelatedConceptAttempts,
			Rand:            rng,
		}),
		engine:     inference.New(nal.New(params.K), ids, params.StampLimits()),
		ids:        ids,
		entropy:    ulid.Monotonic(rand.Reader, 0),
		inputs:     make(chan domain.Input, params.InputBufferCapacity),
		inputReady: make(chan struct{}, 1),
	}
}

// SetPublisher directs answers, traces and snapshots to p.
func (r *Reasoner) SetPublisher(p Publisher) {
	r.out = p
}

// SetTrace makes every admitted and derived task an output event.
func (r *Reasoner) SetTrace(on bool) {
	r.trace = on
}

func (r *Reasoner) RunID() string { return r.runID }

// Cycle is the number of completed cycles.
func (r *Reasoner) Cycle() uint64 { return r.cycle.Load() }

func (r *Reasoner) Memory() *memory.Memory { return r.memory }

func (r *Reasoner) TaskCount() int { return r.buffer.Count() }

// Submit queues an already-parsed sentence for intake. It never blocks.
func (r *Reasoner) Submit(in domain.Input) error {
	if in.Punctuation.HasValue() != (in.Value != nil) {
		return fmt.Errorf("%s input %s: value presence does not match punctuation", in.Punctuation, in.Statement)
	}
	select {
	case r.inputs <- in:
	default:
		inputsRejectedTotal.Inc()
		return ErrInputQueueFull
	}
	select {
	case r.inputReady <- struct{}{}:
	default:
	}
	return nil
}

// SubmitLine parses a Narsese line and queues it. Blank and comment lines
// are ignored.
func (r *Reasoner) SubmitLine(line string) error {
	if narsese.IsBlank(line) {
		return nil
	}
	in, err := narsese.Parse(line)
	if err != nil {
		return err
	}
	return r.Submit(in)
}

// Pending is the number of queued inputs not yet admitted.
func (r *Reasoner) Pending() int { return len(r.inputs) }

// Idle reports whether a cycle would have nothing to work on.
func (r *Reasoner) Idle() bool {
	return r.Pending() == 0 && r.buffer.Count() == 0 && r.memory.Count() == 0
}

// DoCycles runs n cycles back to back.
func (r *Reasoner) DoCycles(n int) {
	for i := 0; i < n; i++ {
		r.DoCycle()
	}
}

// DoCycle admits at most one input, then either observes a task from the
// experience buffer or considers a concept from memory.
func (r *Reasoner) DoCycle() {
	select {
	case in := <-r.inputs:
		r.admit(in)
	default:
	}

	if r.rng.Float64() < r.params.Mindfulness {
		attentionTotal.WithLabelValues("observe").Inc()
		r.observe()
	} else {
		attentionTotal.WithLabelValues("consider").Inc()
		r.consider()
	}

	r.cycle.Add(1)
	cyclesTotal.Inc()
	experienceBufferSize.Set(float64(r.buffer.Count()))
	conceptCount.Set(float64(r.memory.Count()))
}

func (r *Reasoner) admit(in domain.Input) {
	cycle := r.cycle.Load()
	id := r.ids.Next()
	s := domain.NewSentence(id, in.Statement, in.Punctuation, in.Value,
		domain.NewInputStamp(id, cycle, r.params.StampLimits()))
	task := domain.NewInputTask(id, s, cycle)

	r.buffer.PutNewWithBudget(task, r.params.Defaults.Budget(in.Punctuation))
	inputsTotal.WithLabelValues(in.Punctuation.String()).Inc()

	if r.trace {
		r.emit(domain.OutputEvent{Kind: domain.OutputInput, Text: s.String()})
	}
}

func (r *Reasoner) observe() {
	item, ok := r.buffer.Take()
	if !ok {
		return
	}
	r.processTask(item.Object)
	item.Decay(r.params.DecayMultiplier)
	r.buffer.Put(item)
}

// consider combines the drawn concept's best belief with the best belief of
// a related concept.
func (r *Reasoner) consider() {
	item, ok := r.memory.Take()
	if !ok {
		return
	}
	c := item.Object
	if best := c.Beliefs.PeekMax(); best != nil {
		if related, ok := r.memory.GetSemanticallyRelatedConcept(c); ok {
			if other := related.Beliefs.PeekMax(); other != nil {
				r.combine(best, other)
			}
		}
	}
	item.Decay(r.params.DecayMultiplier)
	r.memory.Put(item)
}

func (r *Reasoner) processTask(t *domain.Task) {
	if t.Sentence.Statement.Term().ContainsQueryVariable() {
		// open questions are not answered yet
		t.NeedsInitialProcessing = false
		return
	}

	switch t.Sentence.Punctuation {
	case domain.Judgment:
		r.processJudgment(t)
	case domain.Question, domain.Quest:
		r.processQuestion(t)
	case domain.Goal:
		r.processGoal(t)
	default:
		panic(fmt.Sprintf("service: task %d has punctuation %d", t.ID, t.Sentence.Punctuation))
	}
}

func (r *Reasoner) processJudgment(t *domain.Task) {
	concept := r.memory.PeekConcept(t.Sentence.Statement.Term())

	if t.NeedsInitialProcessing {
		if best := concept.Beliefs.PeekMax(); best != nil {
			r.combine(t.Sentence, best)
		}
		concept.Beliefs.Insert(t.Sentence)
		t.NeedsInitialProcessing = false
		return
	}

	related, ok := r.memory.GetSemanticallyRelatedConcept(concept)
	if !ok {
		return
	}
	if best := related.Beliefs.PeekMax(); best != nil {
		r.combine(t.Sentence, best)
	}
}

// processQuestion answers questions from the belief table and quests from
// the desire table. Questions also drive forward inference.
func (r *Reasoner) processQuestion(t *domain.Task) {
	t.NeedsInitialProcessing = false
	concept := r.memory.PeekConcept(t.Sentence.Statement.Term())

	answer := concept.Table(t.Sentence.Punctuation).PeekMax()
	if answer != nil && t.IsFromInput && t.NeedsAnswer {
		t.NeedsAnswer = false
		verdict := answer.Verdict()
		answersTotal.WithLabelValues(string(verdict)).Inc()
		r.logger.Info("answered",
			zap.Uint64("cycle", r.cycle.Load()),
			zap.String("question", t.Sentence.String()),
			zap.String("answer", answer.String()),
			zap.String("verdict", string(verdict)))
		r.emit(domain.OutputEvent{Kind: domain.OutputAnswer, Text: answer.String(), Verdict: verdict})
	}

	if t.Sentence.Punctuation == domain.Quest {
		return
	}

	premise := t.Sentence
	if answer != nil {
		premise = answer
	}
	related, ok := r.memory.GetSemanticallyRelatedConcept(concept)
	if !ok {
		return
	}
	if best := related.Beliefs.PeekMax(); best != nil {
		r.combine(premise, best)
	}
}

func (r *Reasoner) processGoal(t *domain.Task) {
	if !t.NeedsInitialProcessing {
		return
	}
	concept := r.memory.PeekConcept(t.Sentence.Statement.Term())
	concept.Desires.Insert(t.Sentence)
	t.NeedsInitialProcessing = false
}

// combine runs the inference engine on a pair and buffers what it derives.
func (r *Reasoner) combine(j1, j2 *domain.Sentence) {
	derived := r.engine.DoInference(j1, j2, r.cycle.Load())
	if len(derived) == 0 {
		return
	}
	for _, d := range derived {
		r.buffer.PutNew(d)
		derivationsTotal.WithLabelValues(d.Derivation.Rule.String()).Inc()
		if r.trace {
			r.emit(domain.OutputEvent{Kind: domain.OutputDerived, Text: narsese.FormatTask(d)})
		}
	}
	r.logger.Debug("derived",
		zap.Uint64("cycle", r.cycle.Load()),
		zap.String("premise", j1.String()),
		zap.String("with", j2.String()),
		zap.Int("derived", len(derived)))
}

// emit stamps ev with an id, the run and the current cycle, then publishes it.
func (r *Reasoner) emit(ev domain.OutputEvent) {
	if r.out == nil {
		return
	}
	ev.ID = ulid.MustNew(ulid.Now(), r.entropy).String()
	ev.RunID = r.runID
	ev.Cycle = r.cycle.Load()
	ev.CreatedAt = time.Now().UTC()
	r.out.Publish(ev)
}

// Snapshot captures a read-only summary of the core.
func (r *Reasoner) Snapshot() domain.Snapshot {
	s := domain.Snapshot{
		RunID:        r.runID,
		Cycle:        r.cycle.Load(),
		TaskCount:    r.buffer.Count(),
		ConceptCount: r.memory.Count(),
		TakenAt:      time.Now().UTC(),
	}
	for _, it := range r.buffer.Top(defaultSnapshotTop) {
		s.Tasks = append(s.Tasks, domain.ItemView{Text: narsese.FormatTask(it.Object), Priority: it.Budget.Priority})
	}
	for _, it := range r.memory.Top(defaultSnapshotTop) {
		s.Concepts = append(s.Concepts, domain.ItemView{Text: it.Object.String(), Priority: it.Budget.Priority})
	}
	return s
}
