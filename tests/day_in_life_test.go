package tests

import (
	"strings"
	"testing"
)

func TestDayInTheLifeFlow(t *testing.T) {
	binPath := buildRoutinemateBinary(t)
	dbPath := newDBPath(t)

	_, stderr, exit := runRoutinemate(t, binPath, dbPath, "init")
	if exit != 0 {
		t.Fatalf("init failed: exit=%d stderr=%s", exit, stderr)
	}

	_, stderr, exit = runRoutinemate(t, binPath, dbPath,
		"goal", "set",
		"--weekly-target", "3",
		"--target-weight", "170",
		"--unit", "lb",
		"--target-body-fat", "18",
		"--d-day", "2026-06-01",
	)
	if exit != 0 {
		t.Fatalf("goal set failed: exit=%d stderr=%s", exit, stderr)
	}
	_, stderr, exit = runRoutinemate(t, binPath, dbPath,
		"body", "add",
		"--weight", "172",
		"--unit", "lb",
		"--body-fat", "20",
		"--date", "2026-02-20",
	)
	if exit != 0 {
		t.Fatalf("body add failed: exit=%d stderr=%s", exit, stderr)
	}

	for _, meal := range [][2]string{{"breakfast", "Overnight oats"}, {"lunch", "Chicken bowl"}, {"dinner", "Salmon rice"}} {
		_, stderr, exit = runRoutinemate(t, binPath, dbPath,
			"meal", "add",
			"--type", meal[0],
			"--food", meal[1],
			"--date", "2026-02-20",
		)
		if exit != 0 {
			t.Fatalf("meal add %s failed: exit=%d stderr=%s", meal[0], exit, stderr)
		}
	}

	_, stderr, exit = runRoutinemate(t, binPath, dbPath,
		"workout", "add",
		"--name", "Back Squat",
		"--body-part", "Legs",
		"--sets", "5",
		"--reps", "5",
		"--weight", "100",
		"--duration", "45",
		"--intensity", "high",
		"--date", "2026-02-20",
	)
	if exit != 0 {
		t.Fatalf("workout add failed: exit=%d stderr=%s", exit, stderr)
	}

	stdout, stderr, exit := runRoutinemate(t, binPath, dbPath,
		"dashboard",
		"--range", "7d",
		"--date", "2026-02-20",
		"--no-charts",
	)
	if exit != 0 {
		t.Fatalf("dashboard failed: exit=%d stderr=%s", exit, stderr)
	}

	checks := []string{
		"Range: 7d (2026-02-14 to 2026-02-20, day buckets)",
		"Totals: meals=3 workouts=1 body-metrics=1 active-days=1/7",
		"Latest: weight=78.0kg body-fat=20.0%",
		"Routines: 1 done",
		"D-Day: 2026-06-01",
	}
	for _, want := range checks {
		if !strings.Contains(stdout, want) {
			t.Fatalf("expected dashboard output to contain %q, got:\n%s", want, stdout)
		}
	}
	if strings.Contains(stdout, "Charts") {
		t.Fatalf("--no-charts should suppress charts, got:\n%s", stdout)
	}
}
