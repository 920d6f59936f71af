package mesh_test

import (
	"sync"

	"github.com/bballamudi/CLIMA/mesh"
)

// buildAllRanks drives build concurrently over every simulated rank's Comm,
// the way meshinfo's CLI harness does, and collects results in rank order.
func buildAllRanks(nRanks int, build func(mesh.Comm) (*mesh.Topology, error)) ([]*mesh.Topology, []error) {
	comms := mesh.NewLocalComm(nRanks)
	topos := make([]*mesh.Topology, nRanks)
	errs := make([]error, nRanks)
	var wg sync.WaitGroup
	for r := 0; r < nRanks; r++ {
		wg.Add(1)
		go func(r int) {
			defer wg.Done()
			topos[r], errs[r] = build(comms[r])
		}(r)
	}
	wg.Wait()
	return topos, errs
}
