package pitch

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/lafriks/go-tiled"

	"github.com/openpitch/kickoff-mp/shared/gamemath"
	"github.com/openpitch/kickoff-mp/shared/netconfig"
)

// Object group and property names recognized in TMX pitch maps.
const (
	groupWalls  = "walls"
	groupGoals  = "goals"
	groupSpawns = "spawns"

	propRestitution = "restitution"
	propPlayerColl  = "playerCollision"
	propFlipNormal  = "flipNormal"
	propTeam        = "team"
	propIndex       = "spawnIndex"
)

// Load parses a TMX file into a Pitch. It takes an fs.FS so callers can pass
// embed.FS (client) or os.DirFS (server).
//
// Walls are polyline objects in the "walls" object group; goals and spawns
// are rectangle and point objects in the "goals" and "spawns" groups.
func Load(fsys fs.FS, tmxPath string) (*Pitch, error) {
	m, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	p := &Pitch{
		Name:   strings.TrimSuffix(filepath.Base(tmxPath), ".tmx"),
		Width:  float64(m.Width * m.TileWidth),
		Height: float64(m.Height * m.TileHeight),
	}

	for _, og := range m.ObjectGroups {
		switch og.Name {
		case groupWalls:
			for _, o := range og.Objects {
				segs, err := wallSegments(o)
				if err != nil {
					return nil, fmt.Errorf("walls object %q: %w", o.Name, err)
				}
				p.Segments = append(p.Segments, segs...)
			}
		case groupGoals:
			for _, o := range og.Objects {
				goal, err := goalRegion(o)
				if err != nil {
					return nil, fmt.Errorf("goals object %q: %w", o.Name, err)
				}
				p.Goals = append(p.Goals, goal)
			}
		case groupSpawns:
			collectSpawn(p, o2spawns(og.Objects))
		}
	}

	if len(p.Segments) == 0 {
		return nil, fmt.Errorf("pitch %s has no wall segments", p.Name)
	}
	if len(p.Goals) != 2 {
		return nil, fmt.Errorf("pitch %s has %d goals, want 2", p.Name, len(p.Goals))
	}
	if p.BallSpawn == (gamemath.Vec2{}) {
		p.BallSpawn = gamemath.Vec2{X: p.Width / 2, Y: p.Height / 2}
	}
	return p, nil
}

// wallSegments converts one polyline object into wall segments. Points are
// relative to the object position. The segment normal is the left-hand normal
// of the winding, flipped when the flipNormal property is set.
func wallSegments(o *tiled.Object) ([]Segment, error) {
	if len(o.PolyLines) == 0 {
		return nil, fmt.Errorf("wall object is not a polyline")
	}

	restitution := propFloat(o, propRestitution, wallRestitution)
	playerColl := propBool(o, propPlayerColl, true)
	flip := propBool(o, propFlipNormal, false)

	var segs []Segment
	for _, pl := range o.PolyLines {
		if pl.Points == nil {
			continue
		}
		pts := *pl.Points
		for i := 0; i+1 < len(pts); i++ {
			p1 := gamemath.Vec2{X: o.X + pts[i].X, Y: o.Y + pts[i].Y}
			p2 := gamemath.Vec2{X: o.X + pts[i+1].X, Y: o.Y + pts[i+1].Y}
			n := gamemath.SegmentNormal(p1, p2)
			if flip {
				n = n.Scale(-1)
			}
			segs = append(segs, Segment{
				P1:             p1,
				P2:             p2,
				Normal:         n,
				Restitution:    restitution,
				PlayerCollides: playerColl,
			})
		}
	}
	if len(segs) == 0 {
		return nil, fmt.Errorf("polyline has fewer than two points")
	}
	return segs, nil
}

func goalRegion(o *tiled.Object) (Goal, error) {
	var team netconfig.Team
	switch o.Properties.GetString(propTeam) {
	case "red":
		team = netconfig.TeamRed
	case "blue":
		team = netconfig.TeamBlue
	default:
		return Goal{}, fmt.Errorf("missing or unknown team property %q", o.Properties.GetString(propTeam))
	}
	return Goal{
		P1:   gamemath.Vec2{X: o.X, Y: o.Y},
		P2:   gamemath.Vec2{X: o.X + o.Width, Y: o.Y + o.Height},
		Team: team,
	}, nil
}

type spawn struct {
	name  string
	index int
	pos   gamemath.Vec2
}

func o2spawns(objects []*tiled.Object) []spawn {
	spawns := make([]spawn, 0, len(objects))
	for _, o := range objects {
		spawns = append(spawns, spawn{
			name:  strings.ToLower(o.Name),
			index: int(propFloat(o, propIndex, 0)),
			pos:   gamemath.Vec2{X: o.X, Y: o.Y},
		})
	}
	// Sort by index for consistent assignment.
	sort.Slice(spawns, func(i, j int) bool { return spawns[i].index < spawns[j].index })
	return spawns
}

func collectSpawn(p *Pitch, spawns []spawn) {
	for _, s := range spawns {
		switch s.name {
		case "ball":
			p.BallSpawn = s.pos
		case "red":
			p.RedSpawns = append(p.RedSpawns, s.pos)
		case "blue":
			p.BlueSpawns = append(p.BlueSpawns, s.pos)
		}
	}
}

// propFloat reads a float property, tolerating both numeric and string
// storage in the TMX.
func propFloat(o *tiled.Object, name string, def float64) float64 {
	raw := o.Properties.GetString(name)
	if raw == "" {
		return def
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return f
}

func propBool(o *tiled.Object, name string, def bool) bool {
	switch o.Properties.GetString(name) {
	case "true", "1":
		return true
	case "false", "0":
		return false
	default:
		return def
	}
}

// LoadAll discovers all .tmx files in dir within fsys and returns pitches
// keyed by stem name plus a sorted list of names.
func LoadAll(fsys fs.FS, dir string) (map[string]*Pitch, []string, error) {
	pattern := dir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}

	pitches := make(map[string]*Pitch, len(matches))
	names := make([]string, 0, len(matches))
	for _, path := range matches {
		p, err := Load(fsys, path)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", path, err)
		}
		pitches[p.Name] = p
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return pitches, names, nil
}
