/*
* WinPropStore, a Go library for reading and writing file metadata through the Windows property system.
*
* Copyright (c) the WinPropStore authors, 2022-2026.
*
* This work is licensed under the terms of the MIT license. For a copy, see the LICENSE file in the top-level
* directory or visit <https://opensource.org/licenses/MIT>.
*
 */

package propertystore

import (
	"github.com/go-ole/go-ole"
	"unsafe"
)

// IID of IPropertyStore, needed to request the interface from the shell.
var IPropertyStoreGuid = ole.NewGUID("{886D8EEB-8CF2-4446-8D02-CDBA1DBDCF99}")

type IPropertyStore struct {
	ole.IUnknown
}

type IPropertyStoreVtbl struct {
	ole.IUnknownVtbl
	GetCount uintptr
	GetAt    uintptr
	GetValue uintptr
	SetValue uintptr
	Commit   uintptr
}

func (v *IPropertyStore) VTable() *IPropertyStoreVtbl {
	return (*IPropertyStoreVtbl)(unsafe.Pointer(v.RawVTable))
}

type IBindCtx struct {
	ole.IUnknown
}

// IPropertyStore, WINSDK\um\propsys.idl
//---------------------------------------------------------
// interface IPropertyStore : IUnknown
// {
//     HRESULT GetCount([out] DWORD* cProps);
//
//     HRESULT GetAt(
//         [in]  DWORD        iProp,
//         [out] PROPERTYKEY* pkey);
//
//     HRESULT GetValue(
//         [in]  REFPROPERTYKEY key,
//         [out] PROPVARIANT*   pv);
//
//     HRESULT SetValue(
//         [in] REFPROPERTYKEY     key,
//         [in] REFPROPVARIANT     propvar);
//
//     HRESULT Commit();
// };
