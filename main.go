package main

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/crossworld/cube/utils"
)

func usage() {
	fmt.Println("Usage: cubetool <command> [args]")
	fmt.Println("Commands:")
	fmt.Println("  encode input.bcf output.bcf [--raw]      (re-encode with minimal pointer widths; --raw skips compression)")
	fmt.Println("  info input.bcf                           (validate and print tree statistics)")
	fmt.Println("  raycast input.bcf ox oy oz dx dy dz      (cast a ray in [0,1] local space, print the hit)")
	fmt.Println("  bench [world.bcf] [collision.yaml]       (compare collision strategies on a drop scenario)")
	fmt.Println("  genworld <percentage> <depth> <amount> <output_dir>                  (generate N procedural test worlds)")
	fmt.Println("  genworld <percentageMin> <percentageMax> <depth> <amount> <output_dir>  (per-file random fill in [min,max])")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "encode":
		if len(os.Args) != 4 && len(os.Args) != 5 {
			usage()
			os.Exit(1)
		}
		compress := true
		if len(os.Args) == 5 {
			if os.Args[4] != "--raw" {
				usage()
				os.Exit(1)
			}
			compress = false
		}
		if err := utils.RunEncode(os.Args[2], os.Args[3], compress); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
	case "info":
		if len(os.Args) != 3 {
			usage()
			os.Exit(1)
		}
		if err := utils.RunInfo(os.Args[2]); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
	case "raycast":
		if len(os.Args) != 9 {
			usage()
			os.Exit(1)
		}
		var origin, dir mgl32.Vec3
		for i := 0; i < 3; i++ {
			if _, err := fmt.Sscan(os.Args[3+i], &origin[i]); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			if _, err := fmt.Sscan(os.Args[6+i], &dir[i]); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
		}
		if err := utils.RunRaycast(os.Args[2], origin, dir); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
	case "bench":
		if len(os.Args) > 4 {
			usage()
			os.Exit(1)
		}
		worldPath, cfgPath := "", ""
		if len(os.Args) >= 3 {
			worldPath = os.Args[2]
		}
		if len(os.Args) == 4 {
			cfgPath = os.Args[3]
		}
		if err := utils.RunBench(worldPath, cfgPath); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
	case "genworld":
		// Two forms:
		// 1) genworld <percentage> <depth> <amount> <output_dir>
		// 2) genworld <percentageMin> <percentageMax> <depth> <amount> <output_dir>
		if len(os.Args) == 6 {
			var perc float64
			var depth, amt int
			if _, err := fmt.Sscan(os.Args[2], &perc); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			if _, err := fmt.Sscan(os.Args[3], &depth); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			if _, err := fmt.Sscan(os.Args[4], &amt); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			if err := utils.RunGenWorld(perc, depth, amt, os.Args[5]); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
		} else if len(os.Args) == 7 {
			var minP, maxP float64
			var depth, amt int
			if _, err := fmt.Sscan(os.Args[2], &minP); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			if _, err := fmt.Sscan(os.Args[3], &maxP); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			if _, err := fmt.Sscan(os.Args[4], &depth); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			if _, err := fmt.Sscan(os.Args[5], &amt); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			if err := utils.RunGenWorldRange(minP, maxP, depth, amt, os.Args[6]); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
		} else {
			usage()
			os.Exit(1)
		}
	default:
		usage()
		os.Exit(1)
	}

	fmt.Println("Operation completed!")
}
