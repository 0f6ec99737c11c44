package visualizer_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"vizd/internal/visualizer"
)

// recordingImpl records forwarded calls.
type recordingImpl struct {
	tag    string
	calls  []string
	closed bool
}

func (r *recordingImpl) InitMatrix(x, y int) { r.calls = append(r.calls, "init") }
func (r *recordingImpl) PrepareStage(x, y int) { r.calls = append(r.calls, "prepare") }
func (r *recordingImpl) ClearStage() { r.calls = append(r.calls, "clear") }
func (r *recordingImpl) AvailableSteps() []visualizer.StepIndex {
	return []visualizer.StepIndex{1, 2}
}
func (r *recordingImpl) ReadStepsOffsets(x, y int, f string) error {
	r.calls = append(r.calls, "offsets:"+f)
	return nil
}
func (r *recordingImpl) LoadStepState(step visualizer.StepIndex) ([]visualizer.Line, error) {
	r.calls = append(r.calls, "load")
	return []visualizer.Line{{X2: int(step)}}, nil
}
func (r *recordingImpl) Draw(rows, cols int, _ visualizer.RenderTarget, a visualizer.Actor, _ visualizer.DrawSettings) {
	r.calls = append(r.calls, "draw")
	a.Resize(rows, cols)
}
func (r *recordingImpl) Refresh(rows, cols int, _ visualizer.Actor, _ visualizer.DrawSettings) {
	r.calls = append(r.calls, "refresh")
}
func (r *recordingImpl) Close() error { r.closed = true; return nil }

// brokenImpl is an instance whose construction failed.
type brokenImpl struct {
	recordingImpl
	err error
}

func (b *brokenImpl) Err() error { return b.err }

func ctorTagged(tag string) func() *recordingImpl {
	return func() *recordingImpl { return &recordingImpl{tag: tag} }
}

var _ = Describe("Registry", func() {
	var reg *visualizer.Registry

	BeforeEach(func() {
		reg = visualizer.NewRegistry()
	})

	It("reports unknown models", func() {
		_, err := reg.Create("ballcell")
		Expect(err).To(HaveOccurred())
		Expect(visualizer.IsUnknownModel(err)).To(BeTrue())
		Expect(reg.Has("ballcell")).To(BeFalse())
	})

	It("creates instances reporting the bound model name", func() {
		Expect(reg.Register("ballcell", visualizer.Bind("ballcell", ctorTagged("v1")))).To(Succeed())
		v, err := reg.Create("ballcell")
		Expect(err).NotTo(HaveOccurred())
		Expect(v.ModelName()).To(Equal("ballcell"))
	})

	It("creates a distinct instance per call", func() {
		Expect(reg.Register("m", visualizer.Bind("m", ctorTagged("v1")))).To(Succeed())
		a, _ := reg.Create("m")
		b, _ := reg.Create("m")
		Expect(a).NotTo(BeIdenticalTo(b))
	})

	It("leaves existing instances untouched on re-registration", func() {
		Expect(reg.Register("m", visualizer.Bind("m", ctorTagged("v1")))).To(Succeed())
		old, _ := reg.Create("m")

		Expect(reg.Register("m", visualizer.Bind("m", ctorTagged("v2")))).To(Succeed())
		fresh, _ := reg.Create("m")

		unwrap := func(v visualizer.Visualizer) string {
			return v.(*visualizer.Adapter[*recordingImpl]).Unwrap().tag
		}
		Expect(unwrap(old)).To(Equal("v1"))
		Expect(unwrap(fresh)).To(Equal("v2"))
	})

	It("lists models sorted", func() {
		for _, n := range []string{"sciddicat", "ballcell", "custom"} {
			Expect(reg.Register(n, visualizer.Bind(n, ctorTagged(n)))).To(Succeed())
		}
		Expect(reg.ListModels()).To(Equal([]string{"ballcell", "custom", "sciddicat"}))
	})

	It("rejects empty names and nil constructors", func() {
		Expect(reg.Register("", visualizer.Bind("x", ctorTagged("x")))).NotTo(Succeed())
		Expect(reg.Register("x", nil)).NotTo(Succeed())
		Expect(reg.ListModels()).To(BeEmpty())
	})

	It("surfaces construction failures and closes the instance", func() {
		var made *brokenImpl
		Expect(reg.Register("m", visualizer.Bind("m", func() *brokenImpl {
			made = &brokenImpl{err: errors.New("module is unloaded")}
			return made
		}))).To(Succeed())
		v, err := reg.Create("m")
		Expect(err).To(MatchError(ContainSubstring("module is unloaded")))
		Expect(v).To(BeNil())
		Expect(made.closed).To(BeTrue())
	})

	It("unregisters names", func() {
		Expect(reg.Register("m", visualizer.Bind("m", ctorTagged("v1")))).To(Succeed())
		Expect(reg.Unregister("m")).To(BeTrue())
		Expect(reg.Unregister("m")).To(BeFalse())
		_, err := reg.Create("m")
		Expect(visualizer.IsUnknownModel(err)).To(BeTrue())
	})
})

var _ = Describe("Adapter", func() {
	It("forwards every operation unchanged", func() {
		impl := &recordingImpl{}
		a := visualizer.NewAdapter("custom", impl)
		grid := visualizer.NewGrid()

		a.InitMatrix(4, 4)
		a.PrepareStage(1, 1)
		Expect(a.ReadStepsOffsets(1, 1, "/data/run")).To(Succeed())
		lines, err := a.LoadStepState(7)
		Expect(err).NotTo(HaveOccurred())
		Expect(lines).To(Equal([]visualizer.Line{{X2: 7}}))
		a.Draw(3, 2, visualizer.Handle(1), grid, visualizer.DefaultDrawSettings())
		a.Refresh(3, 2, grid, visualizer.DefaultDrawSettings())
		a.ClearStage()
		Expect(a.AvailableSteps()).To(Equal([]visualizer.StepIndex{1, 2}))
		Expect(a.Close()).To(Succeed())

		Expect(impl.calls).To(Equal([]string{"init", "prepare", "offsets:/data/run", "load", "draw", "refresh", "clear"}))
		Expect(impl.closed).To(BeTrue())
		Expect(a.ModelName()).To(Equal("custom"))
		rows, cols := grid.Size()
		Expect([]int{rows, cols}).To(Equal([]int{3, 2}))
	})
})
