// Package ioseed loads sample planets, scientists and missions into
// an agency.Store. The default data set is embedded in the binary.
package ioseed

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnspace/pkg/agency"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

// Fixture is a set of records to load.
type Fixture struct {
	Planets    []agency.PlanetInput    `yaml:"planets"`
	Scientists []agency.ScientistInput `yaml:"scientists"`
	Missions   []MissionRecord         `yaml:"missions"`
}

// MissionRecord refers to its scientist and planet by name, because
// ids are known only after they are stored.
type MissionRecord struct {
	Name      string `yaml:"name"`
	Scientist string `yaml:"scientist"`
	Planet    string `yaml:"planet"`
}

// Summary counts stored records.
type Summary struct {
	Planets    int
	Scientists int
	Missions   int
}

// Total is the number of all stored records.
func (s Summary) Total() int {
	return s.Planets + s.Scientists + s.Missions
}

// Default returns the embedded fixture.
func Default() (*Fixture, error) {
	return Parse(seedYAML)
}

// Parse reads a YAML fixture and checks that every mission refers to
// a scientist and a planet defined in the same fixture.
func Parse(data []byte) (*Fixture, error) {
	var res Fixture
	if err := yaml.Unmarshal(data, &res); err != nil {
		return nil, ReadError(err)
	}

	scientists := make(map[string]struct{}, len(res.Scientists))
	for _, v := range res.Scientists {
		scientists[v.Name] = struct{}{}
	}
	planets := make(map[string]struct{}, len(res.Planets))
	for _, v := range res.Planets {
		planets[v.Name] = struct{}{}
	}

	for _, v := range res.Missions {
		if _, ok := scientists[v.Scientist]; !ok {
			return nil, ReadError(
				fmt.Errorf("mission %q: unknown scientist %q",
					v.Name, v.Scientist))
		}
		if _, ok := planets[v.Planet]; !ok {
			return nil, ReadError(
				fmt.Errorf("mission %q: unknown planet %q", v.Name, v.Planet))
		}
	}
	return &res, nil
}

// Load stores planets, then scientists, then missions. It stops at
// the first failure; records stored before it stay in the store.
func Load(
	ctx context.Context,
	st agency.Store,
	fx *Fixture,
	progress bool,
) (Summary, error) {
	var res Summary
	start := time.Now()

	total := len(fx.Planets) + len(fx.Scientists) + len(fx.Missions)
	var bar *pb.ProgressBar
	if progress {
		bar = newProgressBar(total, "Seeding: ")
		defer bar.Finish()
	}
	tick := func() {
		if bar != nil {
			bar.Increment()
		}
	}

	planetIDs := make(map[string]int64, len(fx.Planets))
	for _, v := range fx.Planets {
		p, err := st.CreatePlanet(ctx, v)
		if err != nil {
			return res, WriteError("planet", v.Name, err)
		}
		planetIDs[v.Name] = p.ID
		res.Planets++
		tick()
	}

	scientistIDs := make(map[string]int64, len(fx.Scientists))
	for _, v := range fx.Scientists {
		s, err := st.CreateScientist(ctx, v)
		if err != nil {
			return res, WriteError("scientist", v.Name, err)
		}
		scientistIDs[v.Name] = s.ID
		res.Scientists++
		tick()
	}

	for _, v := range fx.Missions {
		in := agency.MissionInput{
			Name:        v.Name,
			ScientistID: scientistIDs[v.Scientist],
			PlanetID:    planetIDs[v.Planet],
		}
		if _, err := st.CreateMission(ctx, in); err != nil {
			return res, WriteError("mission", v.Name, err)
		}
		res.Missions++
		tick()
	}

	dur := gnfmt.TimeString(time.Since(start).Seconds())
	slog.Info("Seed data loaded",
		"planets", res.Planets,
		"scientists", res.Scientists,
		"missions", res.Missions,
		"duration", dur,
	)
	if progress {
		gn.Info(
			"Stored <em>%s</em> records (%s planets, %s scientists, %s missions) in %s",
			humanize.Comma(int64(res.Total())),
			humanize.Comma(int64(res.Planets)),
			humanize.Comma(int64(res.Scientists)),
			humanize.Comma(int64(res.Missions)),
			dur,
		)
	}
	return res, nil
}

func newProgressBar(total int, prefix string) *pb.ProgressBar {
	bar := pb.Full.Start(total)
	bar.Set("prefix", prefix)
	bar.Set(pb.CleanOnFinish, true)
	return bar
}
