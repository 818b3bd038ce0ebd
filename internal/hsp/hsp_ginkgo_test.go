package hsp_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/archipelago-host/archi/internal/archierr"
	"github.com/archipelago-host/archi/internal/hsp"
)

var _ = Describe("Execute", func() {
	It("treats a frame with no states as an immediate no-op", func() {
		status := hsp.Execute(hsp.Frame{}, nil)
		Expect(status).To(Equal(archierr.OK))
	})

	It("runs a single self-looping state until it decides to stop", func() {
		remaining := 3
		loop := hsp.State{Func: func(ec *hsp.ExecutionContext) hsp.Outcome {
			remaining--
			if remaining == 0 {
				return hsp.Continue()
			}
			return hsp.Advance(0, []hsp.State{{Func: ec.Current().Func}})
		}}

		status := hsp.Execute(hsp.Frame{States: []hsp.State{loop}}, nil)
		Expect(status).To(Equal(archierr.OK))
		Expect(remaining).To(Equal(0))
	})

	It("pops more than the stack holds and aborts with misuse", func() {
		bad := hsp.State{Func: func(ec *hsp.ExecutionContext) hsp.Outcome {
			return hsp.Advance(5, nil)
		}}
		status := hsp.Execute(hsp.Frame{States: []hsp.State{bad}}, nil)
		Expect(status).To(Equal(archierr.Misuse))
	})

	It("surfaces an abort status unchanged through Execute's return value", func() {
		aborter := hsp.State{Func: func(ec *hsp.ExecutionContext) hsp.Outcome {
			return hsp.Abort(archierr.Value)
		}}
		status := hsp.Execute(hsp.Frame{States: []hsp.State{aborter}}, nil)
		Expect(status).To(Equal(archierr.Value))
	})
})
