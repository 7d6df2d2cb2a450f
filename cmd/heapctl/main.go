// Command heapctl boots the kernel heap in user space and runs workloads
// against it.
package main

func main() {
	execute()
}
