package main

import (
	"database/sql"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	_ "github.com/mxk/go-sqlite/sqlite3"
	"github.com/rwcarlsen/temper"
	"github.com/rwcarlsen/temper/model"
	"github.com/rwcarlsen/temper/schedule"
)

const nchains = 8

func main() {
	temper.Rand = rand.New(rand.NewSource(time.Now().Unix()))

	ref := model.Normal{Mu: []float64{0, 0}, Sigma: 3}
	target := model.Rosenbrock{NDim: 2}

	// cold-start schedule plus one evaluation pipeline per chain
	s, err := schedule.EquallySpaced(nchains)
	if err != nil {
		log.Fatal(err)
	}

	states := temper.InitStates(nchains, []float64{-2, -2}, []float64{2, 2})
	for i := 0; i < s.NumChains(); i++ {
		p := temper.NewBufPool()
		d := &temper.InterpDensity{Beta: s.At(i), Ref: ref, Target: target}
		ev, err := temper.NewInterpEvaler(d,
			temper.NewBufferedEvaler(ref, p, temper.TagGradRef),
			temper.NewBufferedEvaler(target, p, temper.TagGradTarget),
			p, temper.TagGradInterp,
		)
		if err != nil {
			log.Fatal(err)
		}

		v, g := ev.EvalGrad(states[i])
		fmt.Printf("chain %v: beta=%.4f logdens=%.4f grad=%.4f\n", i, d.Beta, v, g)
	}

	// pretend the round measured a barrier that accumulates most of its
	// difficulty near the target, then adapt the schedule to it.
	pl := schedule.NewPiecewiseLinear()
	for _, beta := range []float64{0, 0.25, 0.5, 0.75, 1} {
		pl.Add(beta, beta*beta*beta)
	}
	barrier, err := pl.Fn()
	if err != nil {
		log.Fatal(err)
	}

	adapted, err := schedule.FromBarrier(nchains, barrier)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("adapted grid: %.4f\n", adapted.Grids())

	os.Remove("sched.sqlite")
	db, err := sql.Open("sqlite3", "sched.sqlite")
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	r, err := schedule.NewRecorder(db)
	if err != nil {
		log.Fatal(err)
	}
	if err := r.Record(0, s, nil); err != nil {
		log.Fatal(err)
	}
	if err := r.Record(1, adapted, barrier); err != nil {
		log.Fatal(err)
	}
	fmt.Println("recorded rounds 0 and 1 to sched.sqlite")
}
