package snake

import (
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/neon-snake/internal/config"
)

// memStore is an in-memory HighScoreStore that records writes.
type memStore struct {
	best   int
	ok     bool
	writes []int
}

func (m *memStore) HighScore() (int, bool) { return m.best, m.ok }

func (m *memStore) SetHighScore(score int) {
	m.best, m.ok = score, true
	m.writes = append(m.writes, score)
}

func newTestEngine(t *testing.T, store HighScoreStore, mutate ...func(*config.SnakeConfig)) *Engine {
	t.Helper()
	cfg := config.DefaultSnakeConfig()
	for _, m := range mutate {
		m(&cfg)
	}
	e, err := NewEngine(cfg, 42, store)
	if err != nil {
		t.Fatalf("NewEngine() failed: %v", err)
	}
	return e
}

// started returns a playing engine with food parked out of the way.
func started(t *testing.T) *Engine {
	t.Helper()
	e := newTestEngine(t, nil)
	if !e.Start() {
		t.Fatal("Start() from Idle should succeed")
	}
	e.food = Cell{X: 15, Y: 5}
	return e
}

func TestNewEngineRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	cfg.Grid.Width = 0
	if _, err := NewEngine(cfg, 1, nil); err == nil {
		t.Error("NewEngine() should reject an invalid config")
	}
}

func TestInitialLayout(t *testing.T) {
	e := newTestEngine(t, nil)
	snap := e.Snapshot()

	if snap.Status != StatusIdle {
		t.Errorf("Status = %s, expected idle", snap.Status)
	}
	want := []Cell{{10, 15}, {10, 16}, {10, 17}}
	if !reflect.DeepEqual(snap.Snake, want) {
		t.Errorf("Snake = %v, expected %v", snap.Snake, want)
	}
	if snap.Direction != DirUp {
		t.Errorf("Direction = %s, expected up", snap.Direction)
	}
	if snap.Interval != 150*time.Millisecond {
		t.Errorf("Interval = %v, expected 150ms", snap.Interval)
	}
	if e.body.Occupies(snap.Food) {
		t.Errorf("Food %s spawned on the snake", snap.Food)
	}
}

func TestStraightUpEndsAtTopWall(t *testing.T) {
	e := started(t)

	res := e.Tick()
	if !res.Moved {
		t.Fatal("first tick should move the snake")
	}
	want := []Cell{{10, 14}, {10, 15}, {10, 16}}
	if got := e.body.Cells(); !reflect.DeepEqual(got, want) {
		t.Fatalf("after one tick snake = %v, expected %v", got, want)
	}

	// Head at row 14; 14 more steps reach row 0.
	for i := 0; i < 14; i++ {
		if res := e.Tick(); res.Collision != CollisionNone {
			t.Fatalf("tick %d collided early: %s", i+2, res.Collision)
		}
	}
	if e.body.Head() != (Cell{10, 0}) {
		t.Fatalf("head = %s, expected (10,0)", e.body.Head())
	}
	if e.Status() != StatusPlaying {
		t.Fatalf("Status = %s, expected playing on row 0", e.Status())
	}

	before := e.body.Cells()
	res = e.Tick()
	if res.Collision != CollisionWall {
		t.Errorf("Collision = %s, expected wall", res.Collision)
	}
	if e.Status() != StatusGameOver {
		t.Errorf("Status = %s, expected game_over", e.Status())
	}
	if !reflect.DeepEqual(e.body.Cells(), before) {
		t.Error("a colliding tick must not move the snake")
	}
}

func TestEatingFood(t *testing.T) {
	e := started(t)
	e.food = e.body.Head().Step(DirUp)
	lenBefore := e.body.Len()

	res := e.Tick()
	if !res.Ate {
		t.Fatal("expected the snake to eat")
	}
	if e.body.Len() != lenBefore+1 {
		t.Errorf("Len = %d, expected %d", e.body.Len(), lenBefore+1)
	}
	if e.Score() != 10 {
		t.Errorf("Score = %d, expected 10", e.Score())
	}
	if e.foodEaten != 1 {
		t.Errorf("foodEaten = %d, expected 1", e.foodEaten)
	}
	if e.body.Occupies(e.food) {
		t.Errorf("new food %s overlaps the snake", e.food)
	}
	if !e.grid.InBounds(e.food) {
		t.Errorf("new food %s is off the grid", e.food)
	}
}

func TestOppositeDirectionDropped(t *testing.T) {
	e := started(t)

	if e.RequestDirection(DirDown) {
		t.Error("reversing from up should be refused")
	}
	if e.pending != DirUp {
		t.Errorf("pending = %s, expected up", e.pending)
	}

	// The check is against the current heading, not the pending one.
	if !e.RequestDirection(DirLeft) {
		t.Fatal("left should be accepted while heading up")
	}
	if !e.RequestDirection(DirRight) {
		t.Fatal("right should be accepted while heading up (last write wins)")
	}
	if e.pending != DirRight {
		t.Errorf("pending = %s, expected right", e.pending)
	}

	e.Tick()
	if e.direction != DirRight {
		t.Errorf("direction = %s, expected right", e.direction)
	}
	if e.RequestDirection(DirLeft) {
		t.Error("reversing from right should be refused")
	}
}

func TestPendingPersistsUntilChanged(t *testing.T) {
	e := started(t)
	e.RequestDirection(DirLeft)

	e.Tick()
	e.Tick()
	if e.direction != DirLeft || e.body.Head() != (Cell{8, 15}) {
		t.Errorf("head = %s heading %s, expected (8,15) heading left", e.body.Head(), e.direction)
	}
}

func TestStaleReversalIsRevalidated(t *testing.T) {
	e := started(t)
	e.pending = DirDown // bypasses RequestDirection

	res := e.Tick()
	if res.Collision != CollisionNone {
		t.Fatalf("stale reversal caused a collision: %s", res.Collision)
	}
	if e.direction != DirUp {
		t.Errorf("direction = %s, expected up", e.direction)
	}
	if e.pending != DirUp {
		t.Errorf("pending = %s, expected reset to up", e.pending)
	}
}

func TestRequestDirectionOnlyWhilePlaying(t *testing.T) {
	e := newTestEngine(t, nil)
	if e.RequestDirection(DirLeft) {
		t.Error("requests in idle should be dropped")
	}

	e.Start()
	e.TogglePause()
	if e.RequestDirection(DirLeft) {
		t.Error("requests while paused should be dropped")
	}
}

func TestSelfCollision(t *testing.T) {
	e := started(t)
	// Hook shape, heading up:
	//   . o      (6,4) tail
	//   H o      (5,5) head, (6,5)
	//   o o      (5,6), (6,6)
	e.body = &Body{cells: []Cell{{5, 5}, {5, 6}, {6, 6}, {6, 5}, {6, 4}}}
	e.direction, e.pending = DirUp, DirUp

	if !e.RequestDirection(DirRight) {
		t.Fatal("right should be accepted")
	}
	res := e.Tick()
	if res.Collision != CollisionSelf {
		t.Errorf("Collision = %s, expected self", res.Collision)
	}
	if e.Status() != StatusGameOver {
		t.Errorf("Status = %s, expected game_over", e.Status())
	}
}

func TestMovingIntoVacatingTail(t *testing.T) {
	e := started(t)
	// 2x2 loop; the tail at (6,5) leaves as the head arrives.
	e.body = &Body{cells: []Cell{{5, 5}, {5, 6}, {6, 6}, {6, 5}}}
	e.direction, e.pending = DirUp, DirUp
	e.RequestDirection(DirRight)

	res := e.Tick()
	if res.Collision != CollisionNone {
		t.Fatalf("chasing the tail should be legal, got %s", res.Collision)
	}
	want := []Cell{{6, 5}, {5, 5}, {5, 6}, {6, 6}}
	if got := e.body.Cells(); !reflect.DeepEqual(got, want) {
		t.Errorf("snake = %v, expected %v", got, want)
	}
}

func TestSpeedUpEveryFifthFood(t *testing.T) {
	e := started(t)
	prev := e.Interval()

	for food := 1; food <= 120; food++ {
		var res TickResult
		e.eat(&res)

		if e.Score() != food*10 {
			t.Fatalf("after %d food score = %d", food, e.Score())
		}
		want := max(150-5*(food/5), 50)
		if got := int(e.Interval().Milliseconds()); got != want {
			t.Fatalf("after %d food interval = %dms, expected %dms", food, got, want)
		}
		if e.Interval() > prev {
			t.Fatalf("interval increased from %v to %v", prev, e.Interval())
		}
		if res.SpedUp != (e.Interval() < prev) {
			t.Fatalf("SpedUp = %v at food %d", res.SpedUp, food)
		}
		prev = e.Interval()
	}
	if e.Interval() != 50*time.Millisecond {
		t.Errorf("interval = %v, expected floor 50ms", e.Interval())
	}
}

func TestFirstSpeedUpAtFifty(t *testing.T) {
	e := started(t)
	for i := 0; i < 4; i++ {
		var res TickResult
		e.eat(&res)
	}
	if e.Interval() != 150*time.Millisecond {
		t.Fatalf("interval = %v before the 5th food, expected 150ms", e.Interval())
	}

	// Fifth food through a real tick.
	e.food = e.body.Head().Step(DirUp)
	res := e.Tick()
	if !res.Ate || !res.SpedUp {
		t.Fatalf("expected eat + speed-up, got %+v", res)
	}
	if e.Score() != 50 || e.Interval() != 145*time.Millisecond {
		t.Errorf("score %d interval %v, expected 50 and 145ms", e.Score(), e.Interval())
	}
}

func TestHighScoreSeededFromStore(t *testing.T) {
	store := &memStore{best: 30, ok: true}
	e := newTestEngine(t, store)
	if e.HighScore() != 30 {
		t.Fatalf("HighScore() = %d, expected 30", e.HighScore())
	}
	e.Start()

	var flags []bool
	for i := 0; i < 5; i++ {
		var res TickResult
		e.eat(&res)
		flags = append(flags, res.NewHighScore)
	}

	if !reflect.DeepEqual(store.writes, []int{40, 50}) {
		t.Errorf("store writes = %v, expected [40 50]", store.writes)
	}
	if !reflect.DeepEqual(flags, []bool{false, false, false, true, true}) {
		t.Errorf("NewHighScore flags = %v", flags)
	}
	if e.HighScore() != 50 {
		t.Errorf("HighScore() = %d, expected 50", e.HighScore())
	}
}

func TestHighScoreAbsent(t *testing.T) {
	if e := newTestEngine(t, nil); e.HighScore() != 0 {
		t.Errorf("nil store: HighScore() = %d, expected 0", e.HighScore())
	}
	if e := newTestEngine(t, &memStore{best: 99, ok: false}); e.HighScore() != 0 {
		t.Errorf("absent value: HighScore() = %d, expected 0", e.HighScore())
	}
}

func TestStateMachine(t *testing.T) {
	e := newTestEngine(t, nil)

	if e.TogglePause() {
		t.Error("TogglePause from idle should be a no-op")
	}
	if e.Restart() {
		t.Error("Restart from idle should be a no-op")
	}
	if res := e.Tick(); res != (TickResult{}) || e.ticks != 0 {
		t.Error("Tick in idle should be a no-op")
	}

	if !e.Start() {
		t.Fatal("Start from idle should succeed")
	}
	if e.Start() {
		t.Error("Start from playing should be a no-op")
	}
	if e.Restart() {
		t.Error("Restart from playing should be a no-op")
	}

	e.TogglePause()
	if e.Status() != StatusPaused {
		t.Fatalf("Status = %s, expected paused", e.Status())
	}
	head := e.body.Head()
	e.Tick()
	if e.body.Head() != head {
		t.Error("Tick while paused moved the snake")
	}

	e.TogglePause()
	e.food = Cell{X: 0, Y: 0}
	for e.Status() == StatusPlaying {
		e.Tick()
	}
	if e.Status() != StatusGameOver {
		t.Fatalf("Status = %s, expected game_over", e.Status())
	}
	if e.TogglePause() {
		t.Error("TogglePause from game over should be a no-op")
	}
	if !e.Restart() {
		t.Error("Restart from game over should succeed")
	}
}

func TestTogglePauseTwiceIsIdempotent(t *testing.T) {
	e := started(t)
	e.RequestDirection(DirLeft)
	e.Tick()
	before := e.Snapshot()

	e.TogglePause()
	e.TogglePause()

	if after := e.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Errorf("state changed across pause/resume:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestRestartResets(t *testing.T) {
	e := started(t)
	e.food = e.body.Head().Step(DirUp)
	e.Tick()
	e.food = Cell{X: 0, Y: 0}
	for e.Status() == StatusPlaying {
		e.Tick()
	}
	if e.Score() != 10 {
		t.Fatalf("Score = %d, expected 10 before restart", e.Score())
	}

	e.Restart()
	snap := e.Snapshot()
	if snap.Status != StatusPlaying || snap.Score != 0 || snap.FoodEaten != 0 {
		t.Errorf("after restart: %+v", snap)
	}
	if snap.Interval != 150*time.Millisecond {
		t.Errorf("Interval = %v, expected 150ms", snap.Interval)
	}
	if !reflect.DeepEqual(snap.Snake, []Cell{{10, 15}, {10, 16}, {10, 17}}) {
		t.Errorf("Snake = %v, expected initial layout", snap.Snake)
	}
	if snap.Collision != CollisionNone {
		t.Errorf("Collision = %s, expected none", snap.Collision)
	}
	if snap.HighScore != 10 {
		t.Errorf("HighScore = %d, expected 10 to survive restart", snap.HighScore)
	}
}

func TestBoardCleared(t *testing.T) {
	e := newTestEngine(t, nil, func(c *config.SnakeConfig) {
		c.Grid = config.GridConfig{Width: 3, Height: 1}
		c.Start = config.StartConfig{X: 1, Y: 0, Length: 2, Direction: "right"}
	})
	e.Start()
	if e.food != (Cell{2, 0}) {
		t.Fatalf("food = %s, expected the only free cell (2,0)", e.food)
	}

	res := e.Tick()
	if !res.Ate || !res.Cleared {
		t.Fatalf("expected eat + cleared, got %+v", res)
	}
	snap := e.Snapshot()
	if snap.Status != StatusGameOver || !snap.Cleared {
		t.Errorf("Status = %s cleared = %v, expected terminal cleared board", snap.Status, snap.Cleared)
	}
	if snap.Collision != CollisionNone {
		t.Errorf("Collision = %s, clearing the board is not a crash", snap.Collision)
	}
}

// TestRandomPlayInvariants plays many random games and checks the body
// invariants after every tick.
func TestRandomPlayInvariants(t *testing.T) {
	e := newTestEngine(t, nil, func(c *config.SnakeConfig) {
		c.Grid = config.GridConfig{Width: 12, Height: 10}
		c.Start = config.StartConfig{X: 5, Y: 5, Length: 3, Direction: "up"}
	})
	moves := rand.New(rand.NewSource(7))
	dirs := []Direction{DirUp, DirDown, DirLeft, DirRight}
	e.Start()

	lastScore := 0
	for step := 0; step < 5000; step++ {
		if e.Status() == StatusGameOver {
			e.Restart()
			if e.Score() != 0 {
				t.Fatalf("score %d after restart", e.Score())
			}
			lastScore = 0
		}
		if moves.Intn(3) == 0 {
			e.RequestDirection(dirs[moves.Intn(len(dirs))])
		}

		lenBefore := e.body.Len()
		prevDir := e.direction
		res := e.Tick()

		if e.direction == prevDir.Opposite() {
			t.Fatalf("step %d: heading reversed from %s", step, prevDir)
		}
		switch {
		case res.Collision != CollisionNone:
			if e.body.Len() != lenBefore {
				t.Fatalf("step %d: collision changed length", step)
			}
		case res.Ate:
			if e.body.Len() != lenBefore+1 {
				t.Fatalf("step %d: eating grew %d -> %d", step, lenBefore, e.body.Len())
			}
		default:
			if e.body.Len() != lenBefore {
				t.Fatalf("step %d: length changed %d -> %d without food", step, lenBefore, e.body.Len())
			}
		}
		if e.Score() < lastScore {
			t.Fatalf("step %d: score decreased %d -> %d", step, lastScore, e.Score())
		}
		lastScore = e.Score()

		cells := e.body.Cells()
		seen := make(map[Cell]bool, len(cells))
		for i, c := range cells {
			if seen[c] {
				t.Fatalf("step %d: segment %s repeated\n%s", step, c, e.Snapshot().Board())
			}
			seen[c] = true
			if !e.grid.InBounds(c) {
				t.Fatalf("step %d: segment %s off the grid", step, c)
			}
			if i > 0 && !c.Adjacent(cells[i-1]) {
				t.Fatalf("step %d: segments %s and %s not adjacent", step, cells[i-1], c)
			}
		}
		if !e.cleared && seen[e.food] {
			t.Fatalf("step %d: food %s under the snake", step, e.food)
		}
	}
}

func TestDeterminism(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	e1, _ := NewEngine(cfg, 12345, nil)
	e2, _ := NewEngine(cfg, 12345, nil)
	e1.Start()
	e2.Start()

	for i := 0; i < 40; i++ {
		if i == 3 {
			e1.RequestDirection(DirLeft)
			e2.RequestDirection(DirLeft)
		}
		if i == 6 {
			e1.RequestDirection(DirUp)
			e2.RequestDirection(DirUp)
		}
		e1.Tick()
		e2.Tick()
	}

	if s1, s2 := e1.Snapshot(), e2.Snapshot(); !reflect.DeepEqual(s1, s2) {
		t.Errorf("snapshots diverged:\n%s\n%s", s1.DebugState(), s2.DebugState())
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	e := started(t)
	snap := e.Snapshot()
	snap.Snake[0] = Cell{X: 0, Y: 0}

	if e.body.Head() != (Cell{10, 15}) {
		t.Error("mutating a snapshot changed the engine")
	}
}

func TestSnapshotBoard(t *testing.T) {
	e := newTestEngine(t, nil, func(c *config.SnakeConfig) {
		c.Grid = config.GridConfig{Width: 4, Height: 4}
		c.Start = config.StartConfig{X: 1, Y: 1, Length: 2, Direction: "up"}
	})
	e.food = Cell{X: 3, Y: 0}

	want := "...*\n" +
		".H..\n" +
		".o..\n" +
		"....\n"
	if got := e.Snapshot().Board(); got != want {
		t.Errorf("Board() =\n%s\nexpected\n%s", got, want)
	}
}
