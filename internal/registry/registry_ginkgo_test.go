package registry_test

import (
	"unsafe"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/archipelago-host/archi/internal/archierr"
	"github.com/archipelago-host/archi/internal/registry"
	"github.com/archipelago-host/archi/internal/value"
)

var _ = Describe("Registry", func() {
	var reg *registry.Registry

	BeforeEach(func() {
		reg = registry.New()
	})

	Describe("an interface missing a required entry point", func() {
		It("reports an interface error rather than panicking", func() {
			bare := &registry.Interface{Name: "bare"} // no entry points at all
			status := reg.Add("k", bare, nil)
			Expect(status).To(Equal(archierr.Interface))
		})

		It("reports an interface error on get/set/act when those entry points are absent", func() {
			initOnly := &registry.Interface{
				Name: "init-only",
				Init: func(params registry.ParamList, out *value.Pointer) archierr.Status {
					*out = value.Zero
					return archierr.OK
				},
			}
			Expect(reg.Add("k", initOnly, nil)).To(Equal(archierr.OK))
			_, getStatus := reg.Get("k", registry.Selector{Name: "x"})
			Expect(getStatus).To(Equal(archierr.Interface))
			Expect(reg.Set("k", registry.Selector{Name: "x"}, value.Zero)).To(Equal(archierr.Interface))
			Expect(reg.Act("k", registry.Selector{Name: "x"}, nil)).To(Equal(archierr.Interface))
		})
	})

	Describe("ASSIGN with an explicit source slot", func() {
		It("copies the value returned by the source's get, not a reference to its handle", func() {
			makeCounter := func() *registry.Interface {
				n := new(int64)
				*n = 9
				return &registry.Interface{
					Init: func(params registry.ParamList, out *value.Pointer) archierr.Status {
						*out = value.NewData(unsafe.Pointer(n), true, nil, value.ElementLayout{})
						return archierr.OK
					},
					Get: func(handle value.Pointer, slot registry.Selector, out *value.Pointer) archierr.Status {
						*out = value.NewData(nil, false, nil, value.ElementLayout{NumOf: uint64(*(*int64)(handle.Data()))})
						return archierr.OK
					},
					Set: func(handle value.Pointer, slot registry.Selector, v value.Pointer) archierr.Status {
						return archierr.OK
					},
				}
			}

			var captured value.Pointer
			dst := &registry.Interface{
				Init: func(params registry.ParamList, out *value.Pointer) archierr.Status {
					*out = value.Zero
					return archierr.OK
				},
				Set: func(handle value.Pointer, slot registry.Selector, v value.Pointer) archierr.Status {
					captured = v
					return archierr.OK
				},
			}

			vm := registry.NewVM(reg, map[string]*registry.Interface{
				"src": makeCounter(),
				"dst": dst,
			})
			slot := registry.Selector{Name: "value"}
			steps := []registry.Step{
				{Kind: registry.StepInit, Key: "src", Init: &registry.InitPayload{InterfaceKey: "src"}},
				{Kind: registry.StepInit, Key: "dst", Init: &registry.InitPayload{InterfaceKey: "dst"}},
				{
					Kind: registry.StepAssign,
					Key:  "dst",
					Assign: &registry.AssignPayload{
						Slot:       registry.Selector{Name: "v"},
						SourceKey:  "src",
						SourceSlot: &slot,
					},
				},
			}
			Expect(vm.Replay(steps, nil)).To(Equal(archierr.OK))
			Expect(captured.Layout().NumOf).To(Equal(uint64(9)))
		})
	})

	Describe("ASSIGN against a nonexistent source key", func() {
		It("fails with a misuse status and does not touch the destination", func() {
			dst := &registry.Interface{
				Init: func(params registry.ParamList, out *value.Pointer) archierr.Status {
					*out = value.Zero
					return archierr.OK
				},
			}
			Expect(reg.Add("dst", dst, nil)).To(Equal(archierr.OK))

			vm := registry.NewVM(reg, nil)
			status := vm.Replay([]registry.Step{
				{
					Kind: registry.StepAssign,
					Key:  "dst",
					Assign: &registry.AssignPayload{
						Slot:      registry.Selector{Name: "v"},
						SourceKey: "ghost",
					},
				},
			}, nil)
			Expect(status).To(Equal(archierr.Misuse))
		})
	})
})
