package testkit

import (
	"archive/zip"
	"io"
	"sync/atomic"
	"testing"
	"time"
)

func TestMustPanic(t *testing.T) {
	MustPanic(t, func() { panic("boom") })
}

func TestMustContain(t *testing.T) {
	MustContain(t, "Applied 3 purchases", "3 purchases")
}

var clock = func() string { return "real" }

func TestSwap_RestoresAfterTest(t *testing.T) {
	t.Run("swapped", func(t *testing.T) {
		Swap(t, &clock, func() string { return "fixed" })
		if clock() != "fixed" {
			t.Fatalf("swap did not apply")
		}
	})
	if clock() != "real" {
		t.Fatalf("swap was not restored")
	}
}

func TestSerial_NoOverlap(t *testing.T) {
	var inside, overlaps atomic.Int32
	for _, name := range []string{"a", "b", "c"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			Serial(t)
			if inside.Add(1) > 1 {
				overlaps.Add(1)
			}
			time.Sleep(10 * time.Millisecond)
			inside.Add(-1)
		})
	}
	t.Cleanup(func() {
		if n := overlaps.Load(); n != 0 {
			t.Errorf("%d overlapping serial sections", n)
		}
	})
}

func TestWriteZip_MembersInNameOrder(t *testing.T) {
	p := WriteZip(t, "orders.zip", map[string]string{
		"b/Retail.OrderHistory.1.csv": "Order ID,Title\n1,Milk\n",
		"a/notes.txt":                 "hi",
	})
	zr, err := zip.OpenReader(p)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer zr.Close()
	if len(zr.File) != 2 || zr.File[0].Name != "a/notes.txt" {
		t.Fatalf("members = %v", zr.File)
	}
	rc, err := zr.File[1].Open()
	if err != nil {
		t.Fatalf("member: %v", err)
	}
	defer rc.Close()
	b, _ := io.ReadAll(rc)
	MustContain(t, string(b), "1,Milk")
}

func TestWriteFile_ReadFile(t *testing.T) {
	p := WriteFile(t, "a.csv", "x,y\n")
	if got := ReadFile(t, p); got != "x,y\n" {
		t.Fatalf("ReadFile = %q", got)
	}
}
